package deck

import (
	"testing"

	"github.com/riverbend/huholdem/internal/randutil"
)

func TestNewDeckExcludingOmitsExcludedCards(t *testing.T) {
	excluded := NewBitboard(MustParseCards("AsAhKsKh2c7d"))
	d := NewDeckExcluding(excluded, randutil.New(1))

	dealt := d.DealN(46)
	if len(dealt) != 46 {
		t.Fatalf("expected 46 cards after excluding 6, got %d", len(dealt))
	}

	seen := Bitboard(0)
	for _, c := range dealt {
		if excluded.Has(c) {
			t.Errorf("dealt excluded card %s", c)
		}
		if seen.Has(c) {
			t.Errorf("dealt duplicate card %s", c)
		}
		seen = seen.Add(c)
	}
}

func TestDealNClampsToRemaining(t *testing.T) {
	excluded := NewBitboard(MustParseCards("AsAh"))
	d := NewDeckExcluding(excluded, randutil.New(1))
	d.DealN(47)
	if rest := d.DealN(10); len(rest) != 3 {
		t.Errorf("expected the last 3 cards, got %d", len(rest))
	}
}

func TestNewDeckExcludingDeterministicForSeed(t *testing.T) {
	excluded := NewBitboard(MustParseCards("QdJc"))
	a := NewDeckExcluding(excluded, randutil.New(7)).DealN(5)
	b := NewDeckExcluding(excluded, randutil.New(7)).DealN(5)
	if !cardsEqual(a, b) {
		t.Errorf("same seed should deal the same cards: %v vs %v", a, b)
	}
}
