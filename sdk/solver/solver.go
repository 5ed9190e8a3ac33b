// Package solver implements the fixed-deal, heads-up MCCFR engine: given two
// hole-card hands and a board, it walks the simplified flop/turn/river
// betting tree defined by internal/bettree, accumulating regret and
// strategy-sum in an internal/infoset store, and exposes the converged
// strategy through QueryStrategy.
package solver

import (
	"context"
	"fmt"

	"github.com/riverbend/huholdem/internal/bettree"
	"github.com/riverbend/huholdem/internal/deck"
	"github.com/riverbend/huholdem/internal/evaluator"
	"github.com/riverbend/huholdem/internal/infoset"
)

// reachEpsilon is the minimum reach probability below which a subgame is
// treated as unreachable and pruned.
const reachEpsilon = 1e-10

// maxDepth safety-bounds the recursion; the betting tree's own MaxRaises
// cap keeps real trees far shallower than this.
const maxDepth = 20

// defaultBigBlind, defaultStartingPotBB and defaultBetSizesBB are SetStakes's
// defaults when the caller does not override them.
const (
	defaultBigBlind      = 1.0
	defaultStartingPotBB = 1.5
)

var defaultBetSizesBB = []float64{1.0}

// Solver owns one fixed (handP0, handP1, board) deal: its own exclusive
// info-set store, its own stakes configuration, nothing shared except the
// read-only rank tables.
type Solver struct {
	handP0 deck.Bitboard
	handP1 deck.Bitboard
	board  deck.Bitboard
	tables *evaluator.RankTables

	bigBlind      float64
	startingPotBB float64
	betSizesBB    []float64

	// UseCFRPlus selects CFR+ update weighting: regrets clamped
	// non-negative, strategy-sum accumulated with linear (iteration
	// number) weighting instead of uniform weighting. Set before calling
	// Solve; changing it mid-solve is not supported.
	UseCFRPlus bool

	store *infoset.Store

	iterationsDone int
}

// NewSolver constructs a solver for a fixed deal. board must hold the full,
// already-resolved community cards for the hand (3, 4, or 5 cards); a
// caller that only has a partial board must complete it (e.g. by dealing
// the missing cards from deck.NewDeckExcluding, as the driver does) before
// constructing the solver, since a solver instance never deals cards
// itself. The solver does not validate hand/board overlap; the driver
// owns that check (errs.ErrCardConflict); behavior is undefined if cards
// conflict.
func NewSolver(handP0, handP1 [2]deck.Card, board []deck.Card, tables *evaluator.RankTables) (*Solver, error) {
	if tables == nil {
		return nil, fmt.Errorf("solver: rank tables must not be nil")
	}
	if len(board) < 3 || len(board) > 5 {
		return nil, fmt.Errorf("solver: board must hold 3..5 cards, got %d", len(board))
	}

	s := &Solver{
		handP0: deck.NewBitboard(handP0[:]),
		handP1: deck.NewBitboard(handP1[:]),
		board:  deck.NewBitboard(board),
		tables: tables,
		store:  infoset.New(),
	}
	s.SetStakes(defaultBigBlind, defaultStartingPotBB, defaultBetSizesBB)
	return s, nil
}

// SetStakes configures the stakes in big-blind units and the bet-size menu
// (as multiples of the pot-entry unit, expressed in BB) available at every
// BET/RAISE decision. Call before Solve; it resets any accumulated regret
// since the action alphabet's layout depends on len(betSizesBB).
func (s *Solver) SetStakes(bigBlind, startingPotBB float64, betSizesBB []float64) {
	s.bigBlind = bigBlind
	s.startingPotBB = startingPotBB
	sizes := make([]float64, len(betSizesBB))
	copy(sizes, betSizesBB)
	s.betSizesBB = sizes
	s.store = infoset.New()
	s.iterationsDone = 0
}

// TableSize returns the number of info sets currently occupied in the
// solver's store.
func (s *Solver) TableSize() int {
	return s.store.Size()
}

// rootBetState is the starting BetState: pot = startingPotBB, nothing
// outstanding to call, contributions split evenly.
func (s *Solver) rootBetState() bettree.BetState {
	return bettree.BetState{
		Pot:    s.startingPotBB,
		ToCall: 0,
		P0Put:  s.startingPotBB / 2,
		P1Put:  s.startingPotBB / 2,
	}
}

// RootBetState exposes the flop-root BetState so a caller (e.g. the driver,
// aggregating root strategies across villain samples) can query the root
// node without recomputing the stakes split itself.
func (s *Solver) RootBetState() bettree.BetState {
	return s.rootBetState()
}

// BetSizesBB returns a copy of the configured bet-size menu, so a caller
// knows how to label the BET_i/RAISE_i slots in a queried strategy.
func (s *Solver) BetSizesBB() []float64 {
	out := make([]float64, len(s.betSizesBB))
	copy(out, s.betSizesBB)
	return out
}

// Solve runs iterations rounds of self-play CFR from the flop root, each
// round walking the full tree once with r0=r1=1. Cancellation is checked at
// iteration-loop granularity, not inside the recursion, per the engine's
// concurrency model: a caller needing finer-grained cancellation should use
// a smaller iteration count and call Solve repeatedly.
func (s *Solver) Solve(ctx context.Context, iterations int) error {
	for i := 0; i < iterations; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.cfr(bettree.Flop, 0, nil, s.rootBetState(), 1, 1, 0, s.iterationsDone+1)
		s.iterationsDone++
	}
	return nil
}

// QueryStrategy rebuilds the info set for (street, player, history, bet),
// looks it up, and normalizes its accumulated strategy-sum into a
// probability distribution over the full action alphabet. If the node was
// never visited, the uniform distribution over legal actions is returned.
// Actions illegal at this node are always masked to zero.
func (s *Solver) QueryStrategy(street bettree.Street, player int, history []bettree.Action, bet bettree.BetState) ([]float64, error) {
	n := len(s.betSizesBB)
	alphabet := bettree.AlphabetSize(n)
	raises := countRaises(history)
	legal := bettree.LegalActions(bet.ToCall, raises, s.betSizesBB)

	dist := make([]float64, alphabet)
	key := infoset.NewKey(uint64(s.board), street, player, history, n, bet)
	if data, ok := s.store.Lookup(key); ok {
		copy(dist, data.StrategySum)
	} else {
		for _, a := range legal {
			dist[bettree.Index(a, n)] = 1
		}
	}

	return maskAndNormalize(dist, legal, n), nil
}

func countRaises(history []bettree.Action) int {
	n := 0
	for _, a := range history {
		if a.Kind == bettree.Raise {
			n++
		}
	}
	return n
}

func maskAndNormalize(dist []float64, legal []bettree.Action, n int) []float64 {
	out := make([]float64, len(dist))
	var total float64
	for _, a := range legal {
		idx := bettree.Index(a, n)
		v := dist[idx]
		if v < 0 {
			v = 0
		}
		out[idx] = v
		total += v
	}
	if total <= 0 {
		for _, a := range legal {
			out[bettree.Index(a, n)] = 1.0 / float64(len(legal))
		}
		return out
	}
	for _, a := range legal {
		out[bettree.Index(a, n)] /= total
	}
	return out
}
