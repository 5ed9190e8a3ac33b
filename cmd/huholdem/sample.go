package main

import (
	"math/rand/v2"

	"github.com/riverbend/huholdem/internal/deck"
	"github.com/riverbend/huholdem/internal/rangeparser"
)

// weightedCombo pairs a hole-card combo with its effective (range-weight
// scaled) draw weight.
type weightedCombo struct {
	a, b   deck.Card
	weight float64
}

func weightedCombos(r *rangeparser.Range) []weightedCombo {
	out := make([]weightedCombo, 0, r.Size())
	for combo, w := range r.Combos() {
		if w <= 0 {
			continue
		}
		out = append(out, weightedCombo{a: combo.Hi, b: combo.Lo, weight: w * r.Weight})
	}
	return out
}

// sampleVillain draws one combo from combos weighted by its effective
// weight, retrying until it finds one disjoint from excluded or it exhausts
// its attempt budget (the combo set is small, so a handful of retries is
// enough in practice). Returns ok=false if no disjoint combo could be drawn.
func sampleVillain(rng *rand.Rand, combos []weightedCombo, excluded deck.Bitboard) (hand [2]deck.Card, ok bool) {
	var total float64
	for _, c := range combos {
		total += c.weight
	}
	if total <= 0 || len(combos) == 0 {
		return hand, false
	}

	const maxAttempts = 50
	for attempt := 0; attempt < maxAttempts; attempt++ {
		target := rng.Float64() * total
		var picked weightedCombo
		for _, c := range combos {
			target -= c.weight
			picked = c
			if target <= 0 {
				break
			}
		}
		if !excluded.Has(picked.a) && !excluded.Has(picked.b) {
			return [2]deck.Card{picked.a, picked.b}, true
		}
	}
	return hand, false
}

// completeFlop pads board (0 cards) out to a random 3-card flop disjoint
// from excluded, mirroring the equity simulator's random board completion
// (sdk/analysis) so the driver can solve a fixed-deal instance even when the
// caller supplied no board at all. The fill cards are dealt from a deck
// that never contains excluded's cards in the first place, rather than
// drawing at random and rejecting collisions.
func completeFlop(board []deck.Card, excluded deck.Bitboard, rng *rand.Rand) []deck.Card {
	if len(board) >= 3 {
		return board
	}
	used := excluded
	for _, c := range board {
		used = used.Add(c)
	}
	full := make([]deck.Card, len(board), 3)
	copy(full, board)
	return append(full, deck.NewDeckExcluding(used, rng).DealN(3-len(board))...)
}
