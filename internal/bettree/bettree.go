// Package bettree models the simplified heads-up betting tree the solver
// walks: legal-action enumeration, action application, terminal detection,
// and showdown payoff, all expressed in big-blind units.
package bettree

import "fmt"

// Street is one betting round.
type Street int

const (
	Flop Street = iota
	Turn
	River
)

func (s Street) String() string {
	switch s {
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	default:
		return "river"
	}
}

// MaxRaises caps the number of raises permitted on a single street.
const MaxRaises = 2

// ActionKind enumerates the shapes an Action can take.
type ActionKind int

const (
	Check ActionKind = iota
	Bet
	Fold
	Call
	Raise
)

// Action is one move in the tree. SizeIndex is only meaningful for Bet and
// Raise, indexing into the solver's configured bet sizes.
type Action struct {
	Kind      ActionKind
	SizeIndex int
}

func (a Action) String() string {
	switch a.Kind {
	case Check:
		return "check"
	case Fold:
		return "fold"
	case Call:
		return "call"
	case Bet:
		return fmt.Sprintf("bet[%d]", a.SizeIndex)
	default:
		return fmt.Sprintf("raise[%d]", a.SizeIndex)
	}
}

// AlphabetSize returns the fixed width of the action alphabet for n
// configured bet sizes: CHECK, n BETs, FOLD, CALL, n RAISEs.
func AlphabetSize(n int) int {
	return 2*n + 3
}

// Index maps an action to its fixed position in the action alphabet.
func Index(a Action, n int) int {
	switch a.Kind {
	case Check:
		return 0
	case Bet:
		return 1 + a.SizeIndex
	case Fold:
		return n + 1
	case Call:
		return n + 2
	default: // Raise
		return n + 3 + a.SizeIndex
	}
}

// BetState is the quadruple (pot, current bet to call, each player's
// contribution) in big-blind units. pot = P0Put + P1Put always holds.
type BetState struct {
	Pot    float64
	ToCall float64
	P0Put  float64
	P1Put  float64
}

func (b BetState) contribution(player int) float64 {
	if player == 0 {
		return b.P0Put
	}
	return b.P1Put
}

func (b *BetState) addContribution(player int, amount float64) {
	if player == 0 {
		b.P0Put += amount
	} else {
		b.P1Put += amount
	}
}

// LegalActions enumerates the actions available to the player to act, given
// the amount outstanding to call and how many raises have already occurred
// on the current street.
func LegalActions(toCall float64, raisesThisStreet int, betSizesBB []float64) []Action {
	if toCall == 0 {
		actions := make([]Action, 0, 1+len(betSizesBB))
		actions = append(actions, Action{Kind: Check})
		for i := range betSizesBB {
			actions = append(actions, Action{Kind: Bet, SizeIndex: i})
		}
		return actions
	}

	actions := []Action{{Kind: Fold}, {Kind: Call}}
	if raisesThisStreet < MaxRaises {
		for i := range betSizesBB {
			actions = append(actions, Action{Kind: Raise, SizeIndex: i})
		}
	}
	return actions
}

// Apply returns the BetState resulting from the acting player taking action
// a. Fold leaves the state unchanged: it is always a terminal action and
// carries no further chip movement.
func Apply(state BetState, actor int, a Action, betSizesBB []float64) BetState {
	next := state
	switch a.Kind {
	case Check, Fold:
		// no chips move
	case Bet:
		s := betSizesBB[a.SizeIndex]
		next.Pot += s
		next.ToCall = s
		next.addContribution(actor, s)
	case Call:
		next.Pot += state.ToCall
		next.addContribution(actor, state.ToCall)
		next.ToCall = 0
	case Raise:
		s := betSizesBB[a.SizeIndex]
		before := state.ToCall
		next.Pot += before + s
		next.ToCall = s
		next.addContribution(actor, before+s)
	}
	return next
}

// IsTerminal reports whether last, given the action preceding it on the
// current street (if any) and the current street, ends the hand.
func IsTerminal(last Action, prev Action, hasPrev bool, street Street) bool {
	switch last.Kind {
	case Fold, Call:
		return true
	case Check:
		return hasPrev && prev.Kind == Check && street == River
	default:
		return false
	}
}

// AdvancesStreet reports whether last is a double-check on a non-river
// street, which carries the BetState forward unchanged onto the next
// street instead of ending the hand.
func AdvancesStreet(last Action, prev Action, hasPrev bool, street Street) bool {
	return last.Kind == Check && hasPrev && prev.Kind == Check && street != River
}

// FoldPayoff returns P0's profit when folder folds: the other player takes
// the pot.
func FoldPayoff(state BetState, folder int) float64 {
	if folder == 1 {
		return state.Pot - state.P0Put
	}
	return -state.P0Put
}

// ShowdownPayoff returns P0's profit at showdown, given cmp = P0's hand
// compared to P1's (positive if P0 strictly best, negative if strictly
// worst, zero on a tie).
func ShowdownPayoff(state BetState, cmp int) float64 {
	switch {
	case cmp > 0:
		return state.Pot - state.P0Put
	case cmp < 0:
		return -state.P0Put
	default:
		return state.Pot/2 - state.P0Put
	}
}
