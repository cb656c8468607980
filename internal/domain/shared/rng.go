package shared

import "math/rand"

// RNG is the single seeded random source of a randomisation pass.
//
// It wraps math/rand.Rand, whose generator for a given seed is stable across
// Go releases, and counts every draw so that the consumption order of a pass
// can be asserted in tests. An RNG is owned by exactly one pass and is not
// safe for concurrent use.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a uniform integer in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// IntRange returns a uniform integer in [lo, hi], both inclusive.
// Swapped bounds are accepted.
func (r *RNG) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Shuffle permutes n elements using the supplied swap function.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	// Fisher-Yates drawing through Intn so every draw is counted.
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
