// Package analysis provides the Monte Carlo equity simulator: a
// probabilistic win/tie/lose estimator for a hand or range against another
// hand or range, distinct from the exact CFR payoff evaluator the solver
// uses internally. It is a standalone library; the driver samples villain
// hole-card pairs with its own weighted draw and does not call it.
package analysis

import (
	"context"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/riverbend/huholdem/internal/deck"
	"github.com/riverbend/huholdem/internal/evaluator"
	"github.com/riverbend/huholdem/internal/randutil"
	"github.com/riverbend/huholdem/internal/rangeparser"
)

// Result tallies a Monte Carlo equity run from the hero's perspective.
type Result struct {
	Wins  int
	Ties  int
	Total int
}

// WinRate returns the fraction of trials the hero won outright.
func (r Result) WinRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Total)
}

// TieRate returns the fraction of trials that tied.
func (r Result) TieRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Ties) / float64(r.Total)
}

// LossRate returns the fraction of trials the hero lost outright.
func (r Result) LossRate() float64 {
	return 1 - r.WinRate() - r.TieRate()
}

// Equity returns the hero's equity share, counting a tie as half a win.
func (r Result) Equity() float64 {
	return r.WinRate() + r.TieRate()/2
}

func (r *Result) add(other Result) {
	r.Wins += other.Wins
	r.Ties += other.Ties
	r.Total += other.Total
}

// HandVsHand estimates equity for a single hero hand against a single
// villain hand over random completions of board (which may already carry 0
// to 5 cards), running trials split across workers goroutines (GOMAXPROCS
// when workers <= 0) bounded by an errgroup and coordinated only through each worker's own deterministic RNG
// stream. No shared mutable state, so no locking is required.
func HandVsHand(ctx context.Context, hero, villain [2]deck.Card, board []deck.Card, tables *evaluator.RankTables, trials int, seed int64, workers int) (Result, error) {
	return simulate(ctx, trials, seed, workers, func(rng *rand.Rand, n int) Result {
		return trialsHandVsHand(hero, villain, board, tables, n, rng)
	})
}

// HandVsRange estimates hero's equity against every combo in villain,
// weighted by each combo's effective weight, over random completions of
// board and a random villain combo draw per trial.
func HandVsRange(ctx context.Context, hero [2]deck.Card, villain *rangeparser.Range, board []deck.Card, tables *evaluator.RankTables, trials int, seed int64, workers int) (Result, error) {
	combos := weightedCombos(villain)
	return simulate(ctx, trials, seed, workers, func(rng *rand.Rand, n int) Result {
		return trialsHandVsRange(hero, combos, board, tables, n, rng)
	})
}

// RangeVsRange estimates equity for every combo of heroRange against a
// random draw from villainRange, aggregated into one Result.
func RangeVsRange(ctx context.Context, heroRange, villainRange *rangeparser.Range, board []deck.Card, tables *evaluator.RankTables, trials int, seed int64, workers int) (Result, error) {
	heroCombos := weightedCombos(heroRange)
	villainCombos := weightedCombos(villainRange)
	return simulate(ctx, trials, seed, workers, func(rng *rand.Rand, n int) Result {
		var acc Result
		for i := 0; i < n; i++ {
			hero := pickWeighted(heroCombos, rng)
			acc.add(trialsHandVsRange(hero, villainCombos, board, tables, 1, rng))
		}
		return acc
	})
}

type weightedCombo struct {
	a, b   deck.Card
	weight float64
}

func weightedCombos(r *rangeparser.Range) []weightedCombo {
	out := make([]weightedCombo, 0, r.Size())
	for combo, w := range r.Combos() {
		out = append(out, weightedCombo{a: combo.Hi, b: combo.Lo, weight: w})
	}
	return out
}

func pickWeighted(combos []weightedCombo, rng *rand.Rand) [2]deck.Card {
	var total float64
	for _, c := range combos {
		total += c.weight
	}
	if total <= 0 || len(combos) == 0 {
		return [2]deck.Card{}
	}
	target := rng.Float64() * total
	for _, c := range combos {
		target -= c.weight
		if target <= 0 {
			return [2]deck.Card{c.a, c.b}
		}
	}
	last := combos[len(combos)-1]
	return [2]deck.Card{last.a, last.b}
}

// simulate splits trials across workers goroutines (clamped to
// GOMAXPROCS-equivalent if workers <= 0), each with its own RNG stream
// seeded deterministically from seed and the worker's index, and sums their
// Results in worker order so the output is reproducible for a fixed seed
// and worker count regardless of scheduling.
func simulate(ctx context.Context, trials int, seed int64, workers int, run func(rng *rand.Rand, n int) Result) (Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > trials {
		workers = max(trials, 1)
	}

	partial := make([]Result, workers)
	g, ctx := errgroup.WithContext(ctx)
	base, extra := trials/workers, trials%workers
	for w := 0; w < workers; w++ {
		w := w
		n := base
		if w < extra {
			n++
		}
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rng := randutil.New(randutil.Stream(seed, uint64(w)))
			partial[w] = run(rng, n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, r := range partial {
		total.add(r)
	}
	return total, nil
}

func trialsHandVsHand(hero, villain [2]deck.Card, board []deck.Card, tables *evaluator.RankTables, n int, rng *rand.Rand) Result {
	used := deck.NewBitboard(append(append([]deck.Card{}, hero[:]...), villain[:]...))
	used |= deck.NewBitboard(board)
	var r Result
	for i := 0; i < n; i++ {
		full := completeBoard(board, used, rng)
		boardBits := deck.NewBitboard(full)
		heroRank := tables.Evaluate(deck.NewBitboard(hero[:]), boardBits)
		villainRank := tables.Evaluate(deck.NewBitboard(villain[:]), boardBits)
		tally(&r, heroRank.Compare(villainRank))
	}
	return r
}

func trialsHandVsRange(hero [2]deck.Card, villain []weightedCombo, board []deck.Card, tables *evaluator.RankTables, n int, rng *rand.Rand) Result {
	var r Result
	heroUsed := deck.NewBitboard(hero[:]) | deck.NewBitboard(board)
	for i := 0; i < n; i++ {
		combo := pickWeighted(villain, rng)
		if combo == ([2]deck.Card{}) {
			continue
		}
		comboBits := deck.NewBitboard(combo[:])
		if comboBits&heroUsed != 0 {
			// Drawn combo collides with hero's hand or the fixed board;
			// redraw once more rather than skew the sample toward
			// whichever combo happens to be disjoint most often.
			combo = pickWeighted(villain, rng)
			comboBits = deck.NewBitboard(combo[:])
			if comboBits&heroUsed != 0 {
				continue
			}
		}
		used := heroUsed | comboBits
		full := completeBoard(board, used, rng)
		boardBits := deck.NewBitboard(full)
		heroRank := tables.Evaluate(deck.NewBitboard(hero[:]), boardBits)
		villainRank := tables.Evaluate(comboBits, boardBits)
		tally(&r, heroRank.Compare(villainRank))
	}
	return r
}

func tally(r *Result, cmp int) {
	r.Total++
	switch {
	case cmp > 0:
		r.Wins++
	case cmp == 0:
		r.Ties++
	}
}

// completeBoard returns board padded with cards dealt from a shuffled deck
// that excludes used (disjoint by construction, not by rejection) up to 5
// total.
func completeBoard(board []deck.Card, used deck.Bitboard, rng *rand.Rand) []deck.Card {
	need := 5 - len(board)
	if need <= 0 {
		return board
	}
	full := make([]deck.Card, len(board), 5)
	copy(full, board)
	return append(full, deck.NewDeckExcluding(used, rng).DealN(need)...)
}
