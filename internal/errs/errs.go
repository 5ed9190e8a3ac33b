// Package errs defines the sentinel error kinds shared across the solver so
// callers can discriminate failure modes with errors.Is / errors.As instead
// of parsing messages.
package errs

import "errors"

var (
	// ErrTableLoad marks a fatal, startup-time failure: a rank-table file
	// or solver checkpoint is missing, corrupt, or was built for a
	// different configuration than the one requested.
	ErrTableLoad = errors.New("table load failed")

	// ErrRangeParse marks a recoverable range-string parsing failure: the
	// offending token is skipped and parsing continues.
	ErrRangeParse = errors.New("range parse failed")

	// ErrCardConflict marks an attempt to construct a solver or deal with
	// overlapping cards between hole cards and the board.
	ErrCardConflict = errors.New("conflicting cards")

	// ErrCapacityExceeded marks an information-set store that has reached
	// its maximum capacity; callers degrade rather than abort.
	ErrCapacityExceeded = errors.New("information set store at capacity")

	// ErrSafetyLimit marks the CFR recursion's depth or reach-probability
	// safety bound tripping. Never surfaced to a caller: the recursion
	// treats it as a zero-utility subgame and returns silently. Kept as a
	// named sentinel purely so the condition has a citable identity in
	// logs and tests.
	ErrSafetyLimit = errors.New("cfr recursion safety limit reached")
)
