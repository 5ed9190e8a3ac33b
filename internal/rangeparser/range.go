// Package rangeparser turns standard poker range notation ("AA", "AKs",
// "TT+", "A5s-A2s", optionally weighted with "@50" or "@0.5") into a weighted set of
// concrete two-card combinations.
package rangeparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/riverbend/huholdem/internal/deck"
)

// Combo is a canonicalized two-card hole pair: Hi is never lower ranked
// than Lo, and for equal ranks the lower suit value comes first, so a
// given pair of cards always produces the same Combo regardless of the
// order they were supplied in.
type Combo struct {
	Hi, Lo deck.Card
}

func newCombo(a, b deck.Card) Combo {
	if a.Rank < b.Rank || (a.Rank == b.Rank && a.Suit > b.Suit) {
		a, b = b, a
	}
	return Combo{Hi: a, Lo: b}
}

// Range is a weighted set of hole-card combinations: each combo carries its
// own weight in [0,1], and the whole range carries an overall weight in
// [0,1] that scales every combo's contribution.
type Range struct {
	combos map[Combo]float64
	Weight float64
}

// New returns an empty range at full weight.
func New() *Range {
	return &Range{combos: make(map[Combo]float64), Weight: 1.0}
}

// Parse builds a Range from comma-separated notation. Unrecognized tokens
// are logged and skipped rather than aborting the parse, so a single typo
// does not invalidate an otherwise-valid range string.
func Parse(notation string) *Range {
	body, overall, err := splitOverallWeight(notation)
	r := New()
	if err != nil {
		log.Warn("range: skipping overall weight suffix", "notation", notation, "err", err)
	} else {
		r.Weight = overall
	}

	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		token, weight, err := splitWeight(part)
		if err != nil {
			log.Warn("range: skipping token", "token", part, "err", err)
			continue
		}
		if err := r.addPart(token, weight); err != nil {
			log.Warn("range: skipping token", "token", part, "err", err)
		}
	}
	return r
}

// splitWeight peels an optional "@W" suffix (W a percentage 0-100 or a
// fraction 0-1) off a single range token.
func splitWeight(part string) (token string, weight float64, err error) {
	at := strings.IndexByte(part, '@')
	if at < 0 {
		return part, 1.0, nil
	}
	w, err := strconv.ParseFloat(part[at+1:], 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid weight suffix: %w", err)
	}
	if w > 1.0 {
		w /= 100.0
	}
	if w < 0 || w > 1.0 {
		return "", 0, fmt.Errorf("weight out of range: %v", w)
	}
	return part[:at], w, nil
}

// splitOverallWeight peels a whole-string trailing "@W" off notation and
// reports it as the range-level weight. A trailing "@W" only scales the
// whole range when no comma anywhere in the string falls after it, which
// in practice means the notation has no commas at all: any comma-separated
// list's trailing "@W" still belongs to its last token, which splitWeight
// handles per-part instead. Returns the untouched notation and a weight of
// 1.0 when no such suffix is present.
func splitOverallWeight(notation string) (body string, weight float64, err error) {
	weight = 1.0
	lastAt := strings.LastIndexByte(notation, '@')
	if lastAt < 0 {
		return notation, weight, nil
	}
	if lastComma := strings.LastIndexByte(notation, ','); lastComma != -1 && lastComma <= lastAt {
		return notation, weight, nil
	}
	if strings.IndexByte(notation[lastAt:], ',') != -1 {
		return notation, weight, nil
	}

	w, err := strconv.ParseFloat(notation[lastAt+1:], 64)
	if err != nil {
		return notation, 1.0, fmt.Errorf("invalid overall weight suffix: %w", err)
	}
	if w > 1.0 {
		w /= 100.0
	}
	if w < 0 || w > 1.0 {
		return notation, 1.0, fmt.Errorf("overall weight out of range: %v", w)
	}
	return notation[:lastAt], w, nil
}

func (r *Range) addPart(part string, weight float64) error {
	switch {
	case strings.Contains(part, "+"):
		return r.addPlusRange(part, weight)
	case strings.Contains(part, "-"):
		return r.addDashRange(part, weight)
	default:
		return r.addSingleHand(part, weight)
	}
}

func (r *Range) addSingleHand(notation string, weight float64) error {
	if len(notation) < 2 || len(notation) > 3 {
		return fmt.Errorf("invalid notation length: %s", notation)
	}
	rank1, ok1 := parseRank(notation[0])
	rank2, ok2 := parseRank(notation[1])
	if !ok1 || !ok2 {
		return fmt.Errorf("invalid rank in %q", notation)
	}

	if rank1 == rank2 {
		if len(notation) == 3 {
			return fmt.Errorf("pocket pairs cannot take a suited/offsuit modifier: %s", notation)
		}
		r.addPocketPair(rank1, weight)
		return nil
	}

	if len(notation) == 2 {
		r.addSuitedCombos(rank1, rank2, weight)
		r.addOffsuitCombos(rank1, rank2, weight)
		return nil
	}

	switch notation[2] {
	case 's':
		r.addSuitedCombos(rank1, rank2, weight)
	case 'o':
		r.addOffsuitCombos(rank1, rank2, weight)
	default:
		return fmt.Errorf("invalid suited/offsuit modifier: %c", notation[2])
	}
	return nil
}

// addPlusRange handles "TT+", "ATs+", "KJo+".
func (r *Range) addPlusRange(notation string, weight float64) error {
	base := strings.TrimSuffix(notation, "+")
	if len(base) < 2 || len(base) > 3 {
		return fmt.Errorf("invalid base notation: %s", base)
	}
	rank1, ok1 := parseRank(base[0])
	rank2, ok2 := parseRank(base[1])
	if !ok1 || !ok2 {
		return fmt.Errorf("invalid rank in %q", base)
	}

	if rank1 == rank2 {
		for rank := rank1; rank <= deck.Ace; rank++ {
			r.addPocketPair(rank, weight)
		}
		return nil
	}

	suited, offsuit := true, true
	if len(base) == 3 {
		switch base[2] {
		case 's':
			offsuit = false
		case 'o':
			suited = false
		default:
			return fmt.Errorf("invalid suited/offsuit modifier: %c", base[2])
		}
	}
	for rank := rank2; rank < rank1; rank++ {
		if suited {
			r.addSuitedCombos(rank1, rank, weight)
		}
		if offsuit {
			r.addOffsuitCombos(rank1, rank, weight)
		}
	}
	return nil
}

// addDashRange handles "22-66" and "A5s-A2s".
func (r *Range) addDashRange(notation string, weight float64) error {
	parts := strings.SplitN(notation, "-", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid dash range: %s", notation)
	}
	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if len(start) < 2 || len(end) < 2 {
		return fmt.Errorf("invalid dash range bounds: %s", notation)
	}

	startHi, ok1 := parseRank(start[0])
	startLo, ok2 := parseRank(start[1])
	endHi, ok3 := parseRank(end[0])
	endLo, ok4 := parseRank(end[1])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return fmt.Errorf("invalid rank in dash range: %s", notation)
	}

	if startHi == startLo && endHi == endLo {
		lo, hi := minRank(startHi, endHi), maxRank(startHi, endHi)
		for rank := lo; rank <= hi; rank++ {
			r.addPocketPair(rank, weight)
		}
		return nil
	}

	if startHi != endHi {
		return fmt.Errorf("unsupported dash range: %s", notation)
	}
	suited := len(start) == 2 || start[2] == 's'
	offsuit := len(start) == 2 || start[2] == 'o'
	lo, hi := minRank(startLo, endLo), maxRank(startLo, endLo)
	for rank := lo; rank <= hi; rank++ {
		if suited {
			r.addSuitedCombos(startHi, rank, weight)
		}
		if offsuit {
			r.addOffsuitCombos(startHi, rank, weight)
		}
	}
	return nil
}

func (r *Range) addPocketPair(rank deck.Rank, weight float64) {
	for s1 := deck.Spades; s1 <= deck.Clubs; s1++ {
		for s2 := s1 + 1; s2 <= deck.Clubs; s2++ {
			r.set(deck.Card{Rank: rank, Suit: s1}, deck.Card{Rank: rank, Suit: s2}, weight)
		}
	}
}

func (r *Range) addSuitedCombos(rank1, rank2 deck.Rank, weight float64) {
	for s := deck.Spades; s <= deck.Clubs; s++ {
		r.set(deck.Card{Rank: rank1, Suit: s}, deck.Card{Rank: rank2, Suit: s}, weight)
	}
}

func (r *Range) addOffsuitCombos(rank1, rank2 deck.Rank, weight float64) {
	for s1 := deck.Spades; s1 <= deck.Clubs; s1++ {
		for s2 := deck.Spades; s2 <= deck.Clubs; s2++ {
			if s1 != s2 {
				r.set(deck.Card{Rank: rank1, Suit: s1}, deck.Card{Rank: rank2, Suit: s2}, weight)
			}
		}
	}
}

// set records a or b's combo at weight, unless the combo was already set by
// an earlier token in the same notation string: overlapping specifiers (e.g.
// "AA, AKs, AA@50") compose by first-occurrence-wins, not last-write-wins.
func (r *Range) set(a, b deck.Card, weight float64) {
	c := newCombo(a, b)
	if _, exists := r.combos[c]; exists {
		return
	}
	r.combos[c] = weight
}

// Contains reports whether the given hole cards are in the range.
func (r *Range) Contains(a, b deck.Card) bool {
	_, ok := r.combos[newCombo(a, b)]
	return ok
}

// ComboWeight returns the combo's own weight (not scaled by Range.Weight),
// or 0 if the combo is not in the range.
func (r *Range) ComboWeight(a, b deck.Card) float64 {
	return r.combos[newCombo(a, b)]
}

// EffectiveWeight returns the combo's weight scaled by the range's overall
// weight.
func (r *Range) EffectiveWeight(a, b deck.Card) float64 {
	return r.ComboWeight(a, b) * r.Weight
}

// Size returns the number of distinct combinations in the range.
func (r *Range) Size() int {
	return len(r.combos)
}

// Combos returns every combination in the range together with its own
// (unscaled) weight.
func (r *Range) Combos() map[Combo]float64 {
	out := make(map[Combo]float64, len(r.combos))
	for c, w := range r.combos {
		out[c] = w
	}
	return out
}

func parseRank(c byte) (deck.Rank, bool) {
	switch c {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return deck.Rank(c - '0'), true
	case 'T', 't':
		return deck.Ten, true
	case 'J', 'j':
		return deck.Jack, true
	case 'Q', 'q':
		return deck.Queen, true
	case 'K', 'k':
		return deck.King, true
	case 'A', 'a':
		return deck.Ace, true
	default:
		return 0, false
	}
}

func minRank(a, b deck.Rank) deck.Rank {
	if a < b {
		return a
	}
	return b
}

func maxRank(a, b deck.Rank) deck.Rank {
	if a > b {
		return a
	}
	return b
}
