// Package config loads the driver's optional stakes/bet-sizing overrides
// from an HCL file: defaults first, file values only overriding fields
// that are actually set.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Stakes is the subset of Solver.SetStakes's parameters that a driver run
// can override from a config file.
type Stakes struct {
	BigBlind      float64   `hcl:"big_blind,optional"`
	StartingPotBB float64   `hcl:"starting_pot_bb,optional"`
	BetSizesBB    []float64 `hcl:"bet_sizes_bb,optional"`
	UseCFRPlus    bool      `hcl:"use_cfr_plus,optional"`
}

// DefaultStakes mirrors Solver.SetStakes's own defaults.
func DefaultStakes() Stakes {
	return Stakes{
		BigBlind:      1.0,
		StartingPotBB: 1.5,
		BetSizesBB:    []float64{1.0},
	}
}

// Load reads path as HCL and overlays it onto DefaultStakes. A missing path
// is not an error: the driver runs with defaults. A malformed file is.
func Load(path string) (Stakes, error) {
	defaults := DefaultStakes()
	if path == "" {
		return defaults, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return defaults, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Stakes{}, fmt.Errorf("parse config %s: %s", path, diags.Error())
	}

	var s Stakes
	if diags := gohcl.DecodeBody(file.Body, nil, &s); diags.HasErrors() {
		return Stakes{}, fmt.Errorf("decode config %s: %s", path, diags.Error())
	}

	if s.BigBlind == 0 {
		s.BigBlind = defaults.BigBlind
	}
	if s.StartingPotBB == 0 {
		s.StartingPotBB = defaults.StartingPotBB
	}
	if len(s.BetSizesBB) == 0 {
		s.BetSizesBB = defaults.BetSizesBB
	}
	return s, nil
}
