// Package fileutil provides the atomic-write discipline shared by the
// rank-table generator and the solver's checkpoint writer.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to filename by staging it in a temporary file
// and renaming it into place. A reader concurrently loading rank tables or
// a checkpoint observes either no file or the complete file, never a torn
// one.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	// Stage in the same directory: a rename across filesystems is a copy,
	// not an atomic operation.
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmpFile, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Flush to disk before the rename makes the file visible.
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil // staged file is complete, skip the deferred cleanup

	// CreateTemp opens with 0600; apply the caller's mode.
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
