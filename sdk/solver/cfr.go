package solver

import (
	"github.com/riverbend/huholdem/internal/bettree"
	"github.com/riverbend/huholdem/internal/infoset"
)

// cfr walks one decision node: it is player's turn to act on street, having
// seen history (actions already taken on this street, not including the
// upcoming one), with the pot at bet and reach probabilities r0/r1 having
// carried play this far. It returns the node's expected value from P0's
// perspective.
func (s *Solver) cfr(street bettree.Street, player int, history []bettree.Action, bet bettree.BetState, r0, r1 float64, depth, iteration int) float64 {
	if depth > maxDepth || r0 < reachEpsilon || r1 < reachEpsilon {
		return 0
	}

	n := len(s.betSizesBB)
	raises := countRaises(history)
	legal := bettree.LegalActions(bet.ToCall, raises, s.betSizesBB)

	key := infoset.NewKey(uint64(s.board), street, player, history, n, bet)
	data := s.store.GetOrCreate(key, bettree.AlphabetSize(n))

	sigma := s.regretMatch(data, legal, n)

	var lastOnStreet bettree.Action
	hasPrev := len(history) > 0
	if hasPrev {
		lastOnStreet = history[len(history)-1]
	}

	util := make([]float64, len(data.Regret))
	var nodeValue float64
	for _, a := range legal {
		idx := bettree.Index(a, n)
		v := s.actionValue(a, lastOnStreet, hasPrev, street, player, history, bet, sigma[idx], r0, r1, depth, iteration)
		util[idx] = v
		nodeValue += sigma[idx] * v
	}

	var cfReach, ownReach float64
	if player == 0 {
		cfReach, ownReach = r1, r0
	} else {
		cfReach, ownReach = r0, r1
	}
	nodeValueActing := fromActing(nodeValue, player)

	strategyWeight := 1.0
	if s.UseCFRPlus {
		strategyWeight = float64(iteration)
	}

	for _, a := range legal {
		idx := bettree.Index(a, n)
		utilActing := fromActing(util[idx], player)
		increment := cfReach * (utilActing - nodeValueActing)
		next := data.Regret[idx] + increment
		if s.UseCFRPlus && next < 0 {
			next = 0
		}
		data.Regret[idx] = next
		data.StrategySum[idx] += strategyWeight * ownReach * sigma[idx]
	}
	data.Visits++

	return nodeValue
}

// actionValue resolves the value (from P0's perspective) of taking action a
// at the current node: direct payoff if it ends the hand, the street
// transition if it is a double-check short of the river, or one more level
// of recursion otherwise. prob is the acting player's probability of having
// chosen a under the current strategy, used to update its own reach.
func (s *Solver) actionValue(a, lastOnStreet bettree.Action, hasPrev bool, street bettree.Street, player int, history []bettree.Action, bet bettree.BetState, prob, r0, r1 float64, depth, iteration int) float64 {
	if a.Kind == bettree.Fold {
		return bettree.FoldPayoff(bet, player)
	}

	next := bettree.Apply(bet, player, a, s.betSizesBB)

	if bettree.IsTerminal(a, lastOnStreet, hasPrev, street) {
		return s.showdownPayoff(next)
	}

	nr0, nr1 := r0, r1
	if player == 0 {
		nr0 *= prob
	} else {
		nr1 *= prob
	}

	if bettree.AdvancesStreet(a, lastOnStreet, hasPrev, street) {
		return s.cfr(street+1, 0, nil, next, nr0, nr1, depth+1, iteration)
	}

	newHistory := make([]bettree.Action, len(history)+1)
	copy(newHistory, history)
	newHistory[len(history)] = a
	return s.cfr(street, 1-player, newHistory, next, nr0, nr1, depth+1, iteration)
}

func (s *Solver) showdownPayoff(bet bettree.BetState) float64 {
	p0Rank := s.tables.Evaluate(s.handP0, s.board)
	p1Rank := s.tables.Evaluate(s.handP1, s.board)
	cmp := p0Rank.Compare(p1Rank)
	return bettree.ShowdownPayoff(bet, cmp)
}

// regretMatch computes the current strategy over legal by regret-matching
// data's accumulated regret: sigma(a) proportional to max(0, regret(a)),
// uniform over legal if all regrets are non-positive.
func (s *Solver) regretMatch(data *infoset.InfoSetData, legal []bettree.Action, n int) []float64 {
	sigma := make([]float64, len(data.Regret))
	var total float64
	for _, a := range legal {
		idx := bettree.Index(a, n)
		r := data.Regret[idx]
		if r > 0 {
			sigma[idx] = r
			total += r
		}
	}
	if total <= 0 {
		for _, a := range legal {
			sigma[bettree.Index(a, n)] = 1.0 / float64(len(legal))
		}
		return sigma
	}
	for _, a := range legal {
		idx := bettree.Index(a, n)
		sigma[idx] /= total
	}
	return sigma
}

// fromActing reorients a P0-perspective value to the acting player's own
// perspective: unchanged for P0, negated for P1.
func fromActing(v float64, player int) float64 {
	if player == 1 {
		return -v
	}
	return v
}
