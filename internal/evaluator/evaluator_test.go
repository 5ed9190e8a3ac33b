package evaluator

import (
	"sync"
	"testing"

	"github.com/riverbend/huholdem/internal/deck"
)

var (
	testTablesOnce sync.Once
	testTables     *RankTables
)

func tables(t *testing.T) *RankTables {
	t.Helper()
	testTablesOnce.Do(func() {
		testTables = GenerateRankTables()
	})
	return testTables
}

func mustParse(t *testing.T, notation string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(notation)
	if err != nil {
		t.Fatalf("ParseCards(%q): %v", notation, err)
	}
	return cards
}

func TestSeedHands(t *testing.T) {
	rt := tables(t)

	royal := rt.EvaluateCards(mustParse(t, "TsJsQsKsAs"))
	if royal != 1 {
		t.Errorf("royal flush: got %d, want 1", royal)
	}
	if !royal.IsRoyal() {
		t.Errorf("royal flush should report IsRoyal")
	}

	wheelSF := rt.EvaluateCards(mustParse(t, "As2s3s4s5s"))
	if wheelSF != 10 {
		t.Errorf("wheel straight flush: got %d, want 10", wheelSF)
	}

	quadAces := rt.EvaluateCards(mustParse(t, "AsAhAdAcKs"))
	if quadAces != 11 {
		t.Errorf("quad aces + king kicker: got %d, want 11", quadAces)
	}

	broadway := rt.EvaluateCards(mustParse(t, "AsKdQhJcTs"))
	if broadway != 1600 {
		t.Errorf("broadway straight: got %d, want 1600", broadway)
	}

	worst := rt.EvaluateCards(mustParse(t, "7c5d4h3s2c"))
	if worst != 7462 {
		t.Errorf("worst high card: got %d, want 7462", worst)
	}
}

func TestWheelStraightMixedSuits(t *testing.T) {
	rt := tables(t)
	wheel := rt.EvaluateCards(mustParse(t, "5h4d3c2sAh"))
	if wheel != 1609 {
		t.Errorf("wheel straight: got %d, want 1609", wheel)
	}
}

func TestEvaluatorInvariants(t *testing.T) {
	rt := tables(t)
	cards := mustParse(t, "AsKsQsJsTs9s8s")
	base := rt.EvaluateCards(cards)
	if base < 1 || base > 7462 {
		t.Fatalf("strength out of range: %d", base)
	}

	reversed := make([]deck.Card, len(cards))
	for i, c := range cards {
		reversed[len(cards)-1-i] = c
	}
	if got := rt.EvaluateCards(reversed); got != base {
		t.Errorf("order dependence: got %d, want %d", got, base)
	}
}

func TestSevenCardWheelStraight(t *testing.T) {
	rt := tables(t)
	// Seven distinct ranks, no flush, whose only straight is the wheel.
	wheel := rt.EvaluateCards(mustParse(t, "Ah2c3d4s5h9cJd"))
	if wheel != 1609 {
		t.Errorf("7-card wheel straight: got %d, want 1609", wheel)
	}
	// A-2-3-4-5-6 holds both the wheel and a six-high straight; the run wins.
	six := rt.EvaluateCards(mustParse(t, "Ah2c3d4s5h6c9d"))
	if six.Type() != StraightType {
		t.Fatalf("expected a straight, got %s (%d)", six, six)
	}
	if six >= wheel {
		t.Errorf("six-high straight should outrank the wheel: six=%d wheel=%d", six, wheel)
	}
}

func TestSixCardWheelStraightFlush(t *testing.T) {
	rt := tables(t)
	// Six spades whose best five are the wheel straight flush, not the
	// ace-high flush.
	h := rt.EvaluateCards(mustParse(t, "As2s3s4s5s8s9h"))
	if h != 10 {
		t.Errorf("wheel straight flush from a 6-card suit: got %d, want 10", h)
	}
}

func TestSevenCardUsesBestFive(t *testing.T) {
	rt := tables(t)
	// Trip aces plus a pair of kings on the board: should score as a full house.
	h := rt.EvaluateCards(mustParse(t, "AsAhAd2c3dKsKh"))
	if h.Type() != FullHouseType {
		t.Errorf("expected full house, got %s (%d)", h, h)
	}
}

func TestCompareOrdering(t *testing.T) {
	rt := tables(t)
	pair := rt.EvaluateCards(mustParse(t, "AsAh2c3d5h9s7s"))
	highCard := rt.EvaluateCards(mustParse(t, "AsKh2c3d5h9s7s"))
	if pair.Compare(highCard) <= 0 {
		t.Errorf("pair should beat high card: pair=%d highCard=%d", pair, highCard)
	}
}

// TestExhaustiveFiveCardEnumeration walks all C(52,5) = 2,598,960 five-card
// hands and checks that the evaluator produces exactly 7462 distinct
// strengths, distributed across categories exactly as documented.
func TestExhaustiveFiveCardEnumeration(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive 5-card enumeration is slow; skipped with -short")
	}
	rt := tables(t)

	var all []deck.Card
	for s := deck.Spades; s <= deck.Clubs; s++ {
		for r := deck.Two; r <= deck.Ace; r++ {
			all = append(all, deck.NewCard(s, r))
		}
	}
	n := len(all)

	distinct := make(map[HandRank]struct{}, 7462)
	var counts [HighCardType + 1]int
	hand := make([]deck.Card, 5)
	total := 0
	for a := 0; a < n; a++ {
		hand[0] = all[a]
		for b := a + 1; b < n; b++ {
			hand[1] = all[b]
			for c := b + 1; c < n; c++ {
				hand[2] = all[c]
				for d := c + 1; d < n; d++ {
					hand[3] = all[d]
					for e := d + 1; e < n; e++ {
						hand[4] = all[e]
						rank := rt.EvaluateCards(hand)
						distinct[rank] = struct{}{}
						counts[rank.Type()]++
						total++
					}
				}
			}
		}
	}

	if total != 2598960 {
		t.Fatalf("enumerated %d hands, want 2598960", total)
	}
	if len(distinct) != 7462 {
		t.Errorf("got %d distinct strengths, want 7462", len(distinct))
	}

	check := func(name string, got, want int) {
		t.Helper()
		if got != want {
			t.Errorf("%s count: got %d, want %d", name, got, want)
		}
	}
	check("straight flush", counts[RoyalFlushType]+counts[StraightFlushType], 40)
	check("four of a kind", counts[FourOfAKindType], 624)
	check("full house", counts[FullHouseType], 3744)
	check("flush", counts[FlushType], 5108)
	check("straight", counts[StraightType], 10200)
	check("three of a kind", counts[ThreeOfAKindType], 54912)
	check("two pair", counts[TwoPairType], 123552)
	check("one pair", counts[OnePairType], 1098240)
	check("high card", counts[HighCardType], 1302540)
}
