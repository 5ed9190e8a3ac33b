// Package randutil centralises deterministic RNG construction: every
// consumer of randomness in this repo (the equity simulator's per-worker
// streams, the driver's villain sampling and board completion) derives its
// *rand.Rand here, so a fixed seed reproduces a whole run.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. The seed is
// passed through a splitmix-style finalizer before feeding the PCG, so
// nearby seeds (sequential worker or category indices) do not produce
// correlated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream derives the sub-seed for one numbered stream of a run: the driver's
// (category, sample) draws, the equity simulator's per-worker trials. Each
// index level is folded through the finalizer, so (seed, i) and (seed, i, j)
// streams never coincide by additive accident the way chained golden-ratio
// offsets can. Because every stream is derived from the run seed and its
// fixed indices rather than consumed positionally, any stream's draws can be
// reproduced without replaying the draws that preceded it.
func Stream(seed int64, indices ...uint64) int64 {
	u := uint64(seed)
	for _, idx := range indices {
		u = mix(u ^ (idx+1)*goldenRatio64)
	}
	return int64(u)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
