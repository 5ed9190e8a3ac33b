package solver

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/coder/quartz"

	"github.com/riverbend/huholdem/internal/errs"
	"github.com/riverbend/huholdem/internal/fileutil"
	"github.com/riverbend/huholdem/internal/infoset"
)

const checkpointFormatVersion = 1

// checkpoint is the on-disk snapshot of a running solve: the configuration,
// the run seed, and the full info-set table. The seed alone is enough to
// reproduce any draw in the run: every RNG consumer in this module derives
// each draw stream independently from the seed and fixed stream indices
// (randutil.Stream) rather than consuming one positional stream, so no
// call-consumption counters need to be persisted or replayed on load.
type checkpoint struct {
	Version        int                     `json:"version"`
	IterationsDone int                     `json:"iterations_done"`
	Seed           int64                   `json:"seed"`
	BigBlind       float64                 `json:"big_blind"`
	StartingPotBB  float64                 `json:"starting_pot_bb"`
	BetSizesBB     []float64               `json:"bet_sizes_bb"`
	UseCFRPlus     bool                    `json:"use_cfr_plus"`
	Entries        []infoset.SnapshotEntry `json:"entries"`
}

// Checkpointer periodically persists a Solver's state to disk using the
// same temp-file + fsync + atomic-rename discipline as the rank-table
// writer, triggered by wall-clock interval or iteration count, whichever
// fires first. The clock is injectable so the trigger is testable without
// real sleeps.
type Checkpointer struct {
	Path          string
	Every         int // iterations; 0 disables the iteration-count trigger
	Interval      time.Duration
	Clock         quartz.Clock
	Seed          int64
	lastWallClock time.Time
	lastIteration int
}

// NewCheckpointer returns a Checkpointer using the real wall clock.
func NewCheckpointer(path string, every int, interval time.Duration, seed int64) *Checkpointer {
	return &Checkpointer{
		Path:     path,
		Every:    every,
		Interval: interval,
		Clock:    quartz.NewReal(),
		Seed:     seed,
	}
}

// MaybeSave writes a checkpoint if the configured iteration or wall-clock
// interval has elapsed since the last write, or unconditionally if force is
// set. Solve does not call it; the caller decides when to invoke it.
func (c *Checkpointer) MaybeSave(s *Solver, force bool) error {
	if c.Path == "" {
		return nil
	}
	now := c.Clock.Now()
	dueByCount := c.Every > 0 && s.iterationsDone-c.lastIteration >= c.Every
	dueByClock := c.Interval > 0 && !c.lastWallClock.IsZero() && now.Sub(c.lastWallClock) >= c.Interval
	if !force && !dueByCount && !dueByClock {
		return nil
	}
	c.lastWallClock = now
	c.lastIteration = s.iterationsDone
	return c.Save(s)
}

// Save writes the checkpoint unconditionally.
func (c *Checkpointer) Save(s *Solver) error {
	snap := checkpoint{
		Version:        checkpointFormatVersion,
		IterationsDone: s.iterationsDone,
		Seed:           c.Seed,
		BigBlind:       s.bigBlind,
		StartingPotBB:  s.startingPotBB,
		BetSizesBB:     s.betSizesBB,
		UseCFRPlus:     s.UseCFRPlus,
		Entries:        s.store.Snapshot(),
	}
	buf, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	return fileutil.WriteFileAtomic(c.Path, buf, 0o644)
}

// LoadCheckpoint restores a previously checkpointed solve into s, which
// must already have been constructed with NewSolver and have its intended
// stakes applied via SetStakes. The checkpoint's stakes, bet sizes, and
// CFR+ setting must match s's current configuration exactly; a mismatch is
// a fatal TableLoad-class error since the regret state cannot be
// meaningfully reinterpreted under a different action alphabet. On success
// it returns the RNG seed recorded at checkpoint time; since every draw
// stream is derived from the seed and its fixed stream indices (never from
// a shared positional stream), the caller reproduces any remaining
// villain-sampling draws from the seed alone.
func LoadCheckpoint(path string, s *Solver) (seed int64, err error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrTableLoad, err)
	}
	var snap checkpoint
	if err := json.Unmarshal(buf, &snap); err != nil {
		return 0, fmt.Errorf("%w: decoding checkpoint: %v", errs.ErrTableLoad, err)
	}
	if snap.Version != checkpointFormatVersion {
		return 0, fmt.Errorf("%w: unsupported checkpoint version %d", errs.ErrTableLoad, snap.Version)
	}
	if snap.BigBlind != s.bigBlind || snap.StartingPotBB != s.startingPotBB || snap.UseCFRPlus != s.UseCFRPlus ||
		!equalFloatSlices(snap.BetSizesBB, s.betSizesBB) {
		return 0, fmt.Errorf("%w: checkpoint configuration does not match requested solve", errs.ErrTableLoad)
	}

	s.store = infoset.Restore(snap.Entries)
	s.iterationsDone = snap.IterationsDone
	return snap.Seed, nil
}

func equalFloatSlices(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
