// Package rng provides the deterministic pseudo-random streams NND needs
// for candidate-weight sampling, rho-sampling, and per-worker derivation
// (spec §9 "Global RNG state": "Re-architect as an explicit Rng parameter
// carried through the driver; per-worker streams derived by splitting a
// seed.").
package rng

import "math/rand"

// Source is the minimal random contract NND's serial path consumes: a
// uniform float in [0, 1) for candidate-heap priorities (spec §4.2) and for
// rho-sampling (spec §4.4).
type Source interface {
	Float64() float64
}

// Rng wraps math/rand.Rand behind the Source contract. It is not safe for
// concurrent use; the parallel driver gives each worker its own instance
// via Split.
type Rng struct {
	r *rand.Rand
}

// New returns a deterministic Rng seeded from seed.
func New(seed int64) *Rng {
	return &Rng{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform value in [0, 1).
func (r *Rng) Float64() float64 { return r.r.Float64() }

// Intn returns a uniform value in [0, n).
func (r *Rng) Intn(n int) int { return r.r.Intn(n) }

// Shuffle randomizes the order of a slice of length n via swap.
func (r *Rng) Shuffle(n int, swap func(i, j int)) { r.r.Shuffle(n, swap) }

// Split derives a deterministic per-worker stream from the root seed and a
// worker id, so that a parallel run with the same root seed and the same
// worker count reproduces the same sequence of draws per worker (spec §4.5,
// §5 "Each worker owns its pseudo-random stream; derivation from a root
// seed must be deterministic.").
func Split(rootSeed int64, workerID int) *Rng {
	// splitmix64-style mixing of the two integers into a single seed.
	z := uint64(rootSeed) + uint64(workerID)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return New(int64(z))
}
