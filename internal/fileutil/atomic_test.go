package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "handranks.dat")
	testData := []byte{0x4B, 0x4E, 0x52, 0x48, 3, 0, 0, 0}

	if err := WriteFileAtomic(testFile, testData, 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("File content mismatch: got %v, want %v", data, testData)
	}

	info, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("File permissions mismatch: got %o, want %o", info.Mode().Perm(), 0644)
	}

	// No staging files should survive a successful write.
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "handranks.dat" {
			t.Errorf("Unexpected file in directory: %s", entry.Name())
		}
	}
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "checkpoint.json")

	if err := WriteFileAtomic(testFile, []byte(`{"version":1}`), 0644); err != nil {
		t.Fatalf("Initial write failed: %v", err)
	}

	newData := []byte(`{"version":1,"iterations_done":500}`)
	if err := WriteFileAtomic(testFile, newData, 0644); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	data, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != string(newData) {
		t.Errorf("File content mismatch: got %q, want %q", string(data), string(newData))
	}
}

func TestWriteFileAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic("/nonexistent/dir/handranks.dat", []byte("data"), 0644)
	if err == nil {
		t.Error("Expected error when writing to non-existent directory")
	}
}
