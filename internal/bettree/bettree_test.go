package bettree

import "testing"

func TestAlphabetSizeAndIndex(t *testing.T) {
	n := 2
	if got := AlphabetSize(n); got != 7 {
		t.Fatalf("AlphabetSize(2) = %d, want 7", got)
	}

	cases := []struct {
		a    Action
		want int
	}{
		{Action{Kind: Check}, 0},
		{Action{Kind: Bet, SizeIndex: 0}, 1},
		{Action{Kind: Bet, SizeIndex: 1}, 2},
		{Action{Kind: Fold}, 3},
		{Action{Kind: Call}, 4},
		{Action{Kind: Raise, SizeIndex: 0}, 5},
		{Action{Kind: Raise, SizeIndex: 1}, 6},
	}
	for _, tc := range cases {
		if got := Index(tc.a, n); got != tc.want {
			t.Errorf("Index(%v, %d) = %d, want %d", tc.a, n, got, tc.want)
		}
	}
}

func TestLegalActionsNoBetOutstanding(t *testing.T) {
	actions := LegalActions(0, 0, []float64{1, 2})
	if len(actions) != 3 {
		t.Fatalf("expected CHECK + 2 BETs, got %d actions", len(actions))
	}
	if actions[0].Kind != Check {
		t.Errorf("first action should be CHECK, got %v", actions[0])
	}
}

func TestLegalActionsFacingBet(t *testing.T) {
	actions := LegalActions(1.0, 0, []float64{1, 2})
	if len(actions) != 4 {
		t.Fatalf("expected FOLD, CALL, and 2 RAISEs, got %d", len(actions))
	}
	if actions[0].Kind != Fold || actions[1].Kind != Call {
		t.Fatalf("expected [FOLD, CALL, ...], got %v", actions)
	}
}

func TestLegalActionsRaiseCapReached(t *testing.T) {
	actions := LegalActions(1.0, MaxRaises, []float64{1, 2})
	if len(actions) != 2 {
		t.Fatalf("raise cap reached: expected only FOLD and CALL, got %v", actions)
	}
}

func TestApplyBetAndCall(t *testing.T) {
	state := BetState{Pot: 1.5, ToCall: 0, P0Put: 0.75, P1Put: 0.75}
	sizes := []float64{1.0}

	afterBet := Apply(state, 0, Action{Kind: Bet, SizeIndex: 0}, sizes)
	if afterBet.Pot != 2.5 || afterBet.ToCall != 1.0 || afterBet.P0Put != 1.75 {
		t.Fatalf("unexpected state after bet: %+v", afterBet)
	}

	afterCall := Apply(afterBet, 1, Action{Kind: Call}, sizes)
	if afterCall.ToCall != 0 || afterCall.P1Put != 1.75 || afterCall.Pot != 3.5 {
		t.Fatalf("unexpected state after call: %+v", afterCall)
	}
}

func TestApplyRaise(t *testing.T) {
	state := BetState{Pot: 2.5, ToCall: 1.0, P0Put: 1.75, P1Put: 0.75}
	sizes := []float64{1.0}
	after := Apply(state, 1, Action{Kind: Raise, SizeIndex: 0}, sizes)
	// caller puts in the outstanding 1.0 plus a fresh 1.0 raise
	if after.ToCall != 1.0 || after.P1Put != 2.75 || after.Pot != 4.5 {
		t.Fatalf("unexpected state after raise: %+v", after)
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(Action{Kind: Fold}, Action{}, true, Flop) {
		t.Error("fold should always be terminal")
	}
	if !IsTerminal(Action{Kind: Call}, Action{}, true, Flop) {
		t.Error("call should always be terminal")
	}
	if IsTerminal(Action{Kind: Check}, Action{}, false, Flop) {
		t.Error("a lone check should not be terminal")
	}
	if !IsTerminal(Action{Kind: Check}, Action{Kind: Check}, true, River) {
		t.Error("double-check on the river should be terminal")
	}
	if IsTerminal(Action{Kind: Check}, Action{Kind: Check}, true, Flop) {
		t.Error("double-check on the flop should advance the street, not end the hand")
	}
}

func TestAdvancesStreet(t *testing.T) {
	if !AdvancesStreet(Action{Kind: Check}, Action{Kind: Check}, true, Flop) {
		t.Error("double-check on the flop should advance the street")
	}
	if AdvancesStreet(Action{Kind: Check}, Action{Kind: Check}, true, River) {
		t.Error("double-check on the river is terminal, not a street advance")
	}
	if AdvancesStreet(Action{Kind: Call}, Action{Kind: Bet}, true, Flop) {
		t.Error("a call never advances the street, it ends the hand")
	}
}

func TestFoldPayoff(t *testing.T) {
	state := BetState{Pot: 3.0, P0Put: 2.0, P1Put: 1.0}
	if got := FoldPayoff(state, 1); got != 1.0 {
		t.Errorf("P1 folds: P0 wins pot minus own contribution, got %v want 1.0", got)
	}
	if got := FoldPayoff(state, 0); got != -2.0 {
		t.Errorf("P0 folds: P0 loses own contribution, got %v want -2.0", got)
	}
}

func TestShowdownPayoff(t *testing.T) {
	state := BetState{Pot: 4.0, P0Put: 2.0, P1Put: 2.0}
	if got := ShowdownPayoff(state, 1); got != 2.0 {
		t.Errorf("P0 wins showdown, got %v want 2.0", got)
	}
	if got := ShowdownPayoff(state, -1); got != -2.0 {
		t.Errorf("P0 loses showdown, got %v want -2.0", got)
	}
	if got := ShowdownPayoff(state, 0); got != 0.0 {
		t.Errorf("tied showdown should split the pot evenly, got %v want 0.0", got)
	}
}
