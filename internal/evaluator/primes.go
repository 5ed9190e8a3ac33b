package evaluator

// rankPrimes assigns each of the thirteen ranks (Two..Ace, index 0..12) a
// distinct prime so that a 5-card rank multiset can be identified, order
// independent, by the product of its primes. Two hands sharing a rank
// multiset always share a product, and no other multiset of size 5 from
// these primes can collide with it.
var rankPrimes = [13]int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}
