package rangeparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverbend/huholdem/internal/deck"
)

func c(notation string) deck.Card {
	cards := deck.MustParseCards(notation)
	return cards[0]
}

func TestParsePocketPair(t *testing.T) {
	r := Parse("AA")
	assert.Equal(t, 6, r.Size(), "AA should expand to C(4,2)=6 combos")
	assert.True(t, r.Contains(c("As"), c("Ah")))
	assert.False(t, r.Contains(c("As"), c("Ks")))
}

func TestParseSuitedAndOffsuit(t *testing.T) {
	r := Parse("AKs")
	assert.Equal(t, 4, r.Size())
	assert.True(t, r.Contains(c("As"), c("Ks")))
	assert.False(t, r.Contains(c("As"), c("Kh")))

	r = Parse("AKo")
	assert.Equal(t, 12, r.Size())
	assert.True(t, r.Contains(c("As"), c("Kh")))
	assert.False(t, r.Contains(c("As"), c("Ks")))

	r = Parse("AK")
	assert.Equal(t, 16, r.Size(), "bare AK should include both suited and offsuit combos")
}

func TestParsePlusRangePocketPairs(t *testing.T) {
	r := Parse("TT+")
	assert.True(t, r.Contains(c("Ts"), c("Th")))
	assert.True(t, r.Contains(c("As"), c("Ah")))
	assert.False(t, r.Contains(c("9s"), c("9h")))
	// TT, JJ, QQ, KK, AA: 5 ranks * 6 combos each
	assert.Equal(t, 30, r.Size())
}

func TestParsePlusRangeSuited(t *testing.T) {
	r := Parse("ATs+")
	assert.True(t, r.Contains(c("As"), c("Ts")))
	assert.True(t, r.Contains(c("As"), c("Js")))
	assert.True(t, r.Contains(c("As"), c("Qs")))
	assert.True(t, r.Contains(c("As"), c("Ks")))
	assert.False(t, r.Contains(c("As"), c("9s")))
	assert.Equal(t, 16, r.Size())
}

func TestParseDashRangePocketPairs(t *testing.T) {
	r := Parse("22-66")
	assert.Equal(t, 30, r.Size())
	assert.True(t, r.Contains(c("2s"), c("2h")))
	assert.True(t, r.Contains(c("6s"), c("6h")))
	assert.False(t, r.Contains(c("7s"), c("7h")))
}

func TestParseDashRangeSuited(t *testing.T) {
	r := Parse("A5s-A2s")
	assert.Equal(t, 16, r.Size())
	assert.True(t, r.Contains(c("As"), c("2s")))
	assert.True(t, r.Contains(c("As"), c("5s")))
	assert.False(t, r.Contains(c("As"), c("6s")))
	assert.False(t, r.Contains(c("As"), c("2h")), "dash range with an s suffix should not include offsuit combos")
}

func TestParseOverallWeightSuffix(t *testing.T) {
	// A trailing "@W" with no comma anywhere in the string scales the
	// whole range (Range.Weight), not the single combo's own weight.
	r := Parse("AA@50")
	require.Equal(t, 6, r.Size())
	assert.InDelta(t, 1.0, r.ComboWeight(c("As"), c("Ah")), 1e-9)
	assert.InDelta(t, 0.5, r.Weight, 1e-9)
	assert.InDelta(t, 0.5, r.EffectiveWeight(c("As"), c("Ah")), 1e-9)

	r = Parse("AA@0.5")
	assert.InDelta(t, 0.5, r.Weight, 1e-9)
}

func TestParsePerHandWeightSuffix(t *testing.T) {
	// Once a comma follows the last "@W" (it attaches to a non-final
	// token) or precedes it (it attaches to the final token of a list),
	// the weight stays per-hand and the range-level weight is untouched.
	r := Parse("AA@50,KK")
	assert.InDelta(t, 0.5, r.ComboWeight(c("As"), c("Ah")), 1e-9)
	assert.InDelta(t, 1.0, r.ComboWeight(c("Ks"), c("Kh")), 1e-9)
	assert.InDelta(t, 1.0, r.Weight, 1e-9)

	r = Parse("KK,AA@50")
	assert.InDelta(t, 0.5, r.ComboWeight(c("As"), c("Ah")), 1e-9)
	assert.InDelta(t, 1.0, r.ComboWeight(c("Ks"), c("Kh")), 1e-9)
	assert.InDelta(t, 1.0, r.Weight, 1e-9)
}

func TestParseFirstOccurrenceWins(t *testing.T) {
	r := Parse("AA@50,AA")
	assert.InDelta(t, 0.5, r.ComboWeight(c("As"), c("Ah")), 1e-9,
		"the first token's weight should stick even though a later token also matches AA")
}

func TestParseSkipsInvalidTokens(t *testing.T) {
	r := Parse("AA, ZZ, KK")
	assert.Equal(t, 12, r.Size(), "the malformed ZZ token should be skipped, not abort the whole parse")
}

func TestParseEmptyNotation(t *testing.T) {
	r := Parse("")
	assert.Equal(t, 0, r.Size())
}

func TestRangeWeightScalesEffectiveWeight(t *testing.T) {
	r := Parse("AA")
	r.Weight = 0.25
	assert.InDelta(t, 0.25, r.EffectiveWeight(c("As"), c("Ah")), 1e-9)
}
