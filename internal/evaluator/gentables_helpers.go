package evaluator

import (
	"math/bits"
	"sort"
)

// forEachFiveCardHand calls fn once for every C(52,5) five-card hand,
// giving its five ranks (0..12, duplicates allowed across suits) and
// whether all five share a suit.
func forEachFiveCardHand(fn func(ranks [5]int, flush bool)) {
	var idx [5]int
	for idx[0] = 0; idx[0] < 48; idx[0]++ {
		for idx[1] = idx[0] + 1; idx[1] < 49; idx[1]++ {
			for idx[2] = idx[1] + 1; idx[2] < 50; idx[2]++ {
				for idx[3] = idx[2] + 1; idx[3] < 51; idx[3]++ {
					for idx[4] = idx[3] + 1; idx[4] < 52; idx[4]++ {
						var ranks [5]int
						suit0 := idx[0] % 4
						flush := true
						for i, c := range idx {
							ranks[i] = c / 4
							if c%4 != suit0 {
								flush = false
							}
						}
						fn(ranks, flush)
					}
				}
			}
		}
	}
}

func maskOf(ranks [5]int) int {
	m := 0
	for _, r := range ranks {
		m |= 1 << uint(r)
	}
	return m
}

func allDistinct(ranks [5]int) bool {
	return bits.OnesCount16(uint16(maskOf(ranks))) == 5
}

func primeProduct(ranks [5]int) int32 {
	p := int32(1)
	for _, r := range ranks {
		p *= int32(rankPrimes[r])
	}
	return p
}

// ranksFromProduct factors a prime product back into its five (possibly
// repeated) ranks by trial division against the known rank primes.
func ranksFromProduct(product int32) [5]int {
	var ranks [5]int
	n := 0
	remaining := product
	for r := 12; r >= 0 && n < 5; r-- {
		prime := int32(rankPrimes[r])
		for remaining%prime == 0 && n < 5 {
			ranks[n] = r
			n++
			remaining /= prime
		}
	}
	return ranks
}

func rankForProduct(products []productEntry, product int32) int16 {
	i := sort.Search(len(products), func(i int) bool { return products[i].Product >= product })
	if i < len(products) && products[i].Product == product {
		return products[i].Rank
	}
	return 0
}

func ranksOfMask(mask uint16) [5]int {
	var ranks [5]int
	n := 0
	for r := 0; r < 13 && n < 5; r++ {
		if mask&(1<<uint(r)) != 0 {
			ranks[n] = r
			n++
		}
	}
	return ranks
}

func straightMaskFor(high int) uint16 {
	if high == 3 { // wheel: A,5,4,3,2
		return 1<<12 | 1<<3 | 1<<2 | 1<<1 | 1<<0
	}
	var m uint16
	for r := high - 4; r <= high; r++ {
		m |= 1 << uint(r)
	}
	return m
}

// topBitsMask returns a mask keeping only the n highest set bits of mask.
func topBitsMask(mask uint16, n int) uint16 {
	var out uint16
	kept := 0
	for r := 12; r >= 0 && kept < n; r-- {
		if mask&(1<<uint(r)) != 0 {
			out |= 1 << uint(r)
			kept++
		}
	}
	return out
}

// classifyCounts derives the handClass of the best 5-card hand reachable
// from a non-flush rank-count shape (5, 6, or 7 cards spread across up to
// four copies per rank).
func classifyCounts(counts [13]int) handClass {
	if hasCount(counts, 4) {
		quad := highestWithCount(counts, 4, -1)
		kicker := topNDistinct(counts, 1, quad)[0]
		return handClass{category: classFourOfAKind, tiebreak: [5]int{quad, kicker, -1, -1, -1}}
	}
	if hasCount(counts, 3) {
		trips := highestWithCount(counts, 3, -1)
		var pair int
		if countOfCount(counts, 3) == 2 {
			pair = highestWithCount(counts, 3, trips)
		} else if hasCount(counts, 2) {
			pair = highestWithCount(counts, 2, -1)
		} else {
			pair = -1
		}
		if pair >= 0 {
			return handClass{category: classFullHouse, tiebreak: [5]int{trips, pair, -1, -1, -1}}
		}
	}
	if high := straightHigh(counts); high >= 0 {
		return handClass{category: classStraight, tiebreak: [5]int{high, -1, -1, -1, -1}}
	}
	if hasCount(counts, 3) {
		trips := highestWithCount(counts, 3, -1)
		kickers := topNDistinct(counts, 2, trips)
		return handClass{category: classThreeOfAKind, tiebreak: [5]int{trips, kickers[0], kickers[1], -1, -1}}
	}
	if countOfCount(counts, 2) >= 2 {
		hi := highestWithCount(counts, 2, -1)
		lo := highestWithCount(counts, 2, hi)
		kicker := topNDistinct(counts, 1, hi, lo)[0]
		return handClass{category: classTwoPair, tiebreak: [5]int{hi, lo, kicker, -1, -1}}
	}
	if hasCount(counts, 2) {
		pair := highestWithCount(counts, 2, -1)
		kickers := topNDistinct(counts, 3, pair)
		return handClass{category: classOnePair, tiebreak: [5]int{pair, kickers[0], kickers[1], kickers[2], -1}}
	}
	return handClass{category: classHighCard, tiebreak: topNDistinct(counts, 5)}
}

// topNDistinct returns the n highest ranks present (count >= 1) in counts,
// skipping any rank in exclude, padded with -1.
func topNDistinct(counts [13]int, n int, exclude ...int) [5]int {
	result := [5]int{-1, -1, -1, -1, -1}
	found := 0
	for r := 12; r >= 0 && found < n; r-- {
		if counts[r] == 0 {
			continue
		}
		skip := false
		for _, e := range exclude {
			if e == r {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		result[found] = r
		found++
	}
	return result
}
