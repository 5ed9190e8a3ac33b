package solver

import "github.com/riverbend/huholdem/internal/bettree"

// Policy is a read-only strategy view over a solved (or checkpoint-restored)
// solver. It exposes only querying, so code that consumes strategies (the
// driver's aggregation, report rendering) can be handed a Policy and never
// accidentally run further iterations or reconfigure stakes on the shared
// instance.
type Policy struct {
	s *Solver
}

// Policy returns the solver's read-only strategy view. The view reads the
// solver's live store, so querying it after further Solve calls reflects the
// additional iterations.
func (s *Solver) Policy() *Policy {
	return &Policy{s: s}
}

// Query normalizes the accumulated strategy-sum at the requested node into a
// probability distribution over the action alphabet, exactly as
// Solver.QueryStrategy does.
func (p *Policy) Query(street bettree.Street, player int, history []bettree.Action, bet bettree.BetState) ([]float64, error) {
	return p.s.QueryStrategy(street, player, history, bet)
}

// Root returns the flop-root BetState of the underlying solve.
func (p *Policy) Root() bettree.BetState {
	return p.s.RootBetState()
}

// BetSizesBB returns a copy of the underlying solver's bet-size menu.
func (p *Policy) BetSizesBB() []float64 {
	return p.s.BetSizesBB()
}
