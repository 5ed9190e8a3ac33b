package solver

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"

	"github.com/riverbend/huholdem/internal/deck"
)

func newTestSolver(t *testing.T) *Solver {
	t.Helper()
	rt := testTables(t)
	board := deck.MustParseCards("2s3s4s")
	s, err := NewSolver(hand(t, "AsAh"), hand(t, "KsKh"), board, rt)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	return s
}

func TestCheckpointSaveAndLoadRoundTrip(t *testing.T) {
	s := newTestSolver(t)
	if err := s.Solve(context.Background(), 5); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	path := filepath.Join(t.TempDir(), "checkpoint.json")
	cp := NewCheckpointer(path, 0, 0, 42)
	if err := cp.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fresh := newTestSolver(t)
	seed, err := LoadCheckpoint(path, fresh)
	if err != nil {
		t.Fatalf("LoadCheckpoint: %v", err)
	}
	if seed != 42 {
		t.Errorf("seed = %d, want 42", seed)
	}
	if fresh.TableSize() != s.TableSize() {
		t.Errorf("restored table size = %d, want %d", fresh.TableSize(), s.TableSize())
	}
	if fresh.iterationsDone != s.iterationsDone {
		t.Errorf("restored iterationsDone = %d, want %d", fresh.iterationsDone, s.iterationsDone)
	}
}

func TestLoadCheckpointRejectsMismatchedStakes(t *testing.T) {
	s := newTestSolver(t)
	if err := s.Solve(context.Background(), 2); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	if err := NewCheckpointer(path, 0, 0, 1).Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mismatched := newTestSolver(t)
	mismatched.SetStakes(2.0, 3.0, []float64{1.0})
	if _, err := LoadCheckpoint(path, mismatched); err == nil {
		t.Fatal("expected an error loading a checkpoint with different stakes")
	}
}

func TestLoadCheckpointRejectsMissingFile(t *testing.T) {
	s := newTestSolver(t)
	if _, err := LoadCheckpoint(filepath.Join(t.TempDir(), "missing.json"), s); err == nil {
		t.Fatal("expected an error loading a nonexistent checkpoint")
	}
}

func TestMaybeSaveRespectsIterationTrigger(t *testing.T) {
	s := newTestSolver(t)
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	cp := NewCheckpointer(path, 10, 0, 1)

	s.iterationsDone = 3
	if err := cp.MaybeSave(s, false); err != nil {
		t.Fatalf("MaybeSave: %v", err)
	}
	if _, err := LoadCheckpoint(path, newTestSolver(t)); err == nil {
		t.Fatal("expected no checkpoint file before the iteration trigger fires")
	}

	s.iterationsDone = 11
	if err := cp.MaybeSave(s, false); err != nil {
		t.Fatalf("MaybeSave: %v", err)
	}
	fresh := newTestSolver(t)
	if _, err := LoadCheckpoint(path, fresh); err != nil {
		t.Fatalf("expected a checkpoint file once the iteration trigger fires: %v", err)
	}
}

func TestMaybeSaveRespectsClockTrigger(t *testing.T) {
	s := newTestSolver(t)
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	mock := quartz.NewMock(t)
	cp := NewCheckpointer(path, 0, time.Minute, 1)
	cp.Clock = mock

	if err := cp.MaybeSave(s, true); err != nil {
		t.Fatalf("forced MaybeSave: %v", err)
	}
	forcedAt := mock.Now()

	mock.Advance(30 * time.Second)
	if err := cp.MaybeSave(s, false); err != nil {
		t.Fatalf("MaybeSave: %v", err)
	}
	if !cp.lastWallClock.Equal(forcedAt) {
		t.Error("no checkpoint expected 30s after the last one with a 1m interval")
	}

	mock.Advance(31 * time.Second)
	if err := cp.MaybeSave(s, false); err != nil {
		t.Fatalf("MaybeSave: %v", err)
	}
	if !cp.lastWallClock.Equal(mock.Now()) {
		t.Error("expected a checkpoint once the 1m interval elapsed")
	}
}
