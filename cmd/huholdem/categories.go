package main

import (
	"sort"

	"github.com/riverbend/huholdem/internal/deck"
	"github.com/riverbend/huholdem/internal/rangeparser"
)

// categoryKey returns the canonical 169-way starting-hand label for a combo
// ("AKs", "72o", "77"), the same notation the range parser accepts.
func categoryKey(a, b deck.Card) string {
	hi, lo := a, b
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}
	if hi.Rank == lo.Rank {
		return hi.Rank.String() + lo.Rank.String()
	}
	suited := "o"
	if hi.Suit == lo.Suit {
		suited = "s"
	}
	return hi.Rank.String() + lo.Rank.String() + suited
}

// categoryEntry is one representative combo standing in for every suit
// variant of the same 169-way starting-hand category, carrying the
// category's total weight in the range for ordering the report.
type categoryEntry struct {
	Category string
	Hero     [2]deck.Card
	Weight   float64
}

// representativeCategories groups r's combos by categoryKey, skipping any
// combo that conflicts with excluded (the board, or whatever cards the
// caller has already committed to), and returns one representative combo per
// category present with positive weight. Entries are sorted by descending
// total category weight so the strongest categories are reported first.
func representativeCategories(r *rangeparser.Range, excluded deck.Bitboard) []categoryEntry {
	first := make(map[string][2]deck.Card)
	weight := make(map[string]float64)
	for combo, w := range r.Combos() {
		if w <= 0 {
			continue
		}
		if excluded.Has(combo.Hi) || excluded.Has(combo.Lo) {
			continue
		}
		key := categoryKey(combo.Hi, combo.Lo)
		if _, ok := first[key]; !ok {
			first[key] = [2]deck.Card{combo.Hi, combo.Lo}
		}
		weight[key] += w * r.Weight
	}

	entries := make([]categoryEntry, 0, len(first))
	for key, hero := range first {
		entries = append(entries, categoryEntry{Category: key, Hero: hero, Weight: weight[key]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return entries[i].Category < entries[j].Category
	})
	return entries
}
