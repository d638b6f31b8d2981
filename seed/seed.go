// Package seed builds the initial bounded neighbor heap NND refines (spec
// §4.1 Lifecycle: "NND always starts from *some* heap"). It is not named as
// its own [MODULE] in spec.md, which only mentions seeding in passing as an
// external collaborator; this package supplies the two seeding strategies
// original_source/ actually ships (pure-random, and conversion of an
// already-computed graph), so the top-level Build/Query API has a usable
// default without every caller hand-rolling a heap first.
package seed

import (
	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/internal/rng"
)

// DistFunc evaluates the configured distance metric between two point
// indices of the dataset being seeded.
type DistFunc[Out heap.Float] func(p, q uint32) Out

// Random fills a fresh n_points x k heap by, for every point, drawing k
// distinct candidate indices uniformly at random (excluding the point
// itself) and pushing them in. This is the Go equivalent of
// original_source/src/rnn_randnbrs.cpp's RandomSeed: no structure is
// exploited, so recall after seeding is poor but every later NND iteration
// only improves on it.
//
// selfQuery controls whether index i itself is eligible to be drawn as its
// own candidate (false for a build over one dataset; true when seeding a
// query heap against a distinct reference set where self-exclusion does not
// apply, spec §4.6).
func Random[Out heap.Float](nPoints, nQueries, k int, dist DistFunc[Out], r rng.Source, selfQuery bool) *heap.Heap[Out] {
	h := heap.New[Out](nQueries, k, true)
	for i := 0; i < nQueries; i++ {
		filled := 0
		attempts := 0
		maxAttempts := k * 40
		for filled < k && attempts < maxAttempts {
			attempts++
			j := uint32(int(r.Float64() * float64(nPoints)))
			if int(j) >= nPoints {
				j = uint32(nPoints - 1)
			}
			if !selfQuery && int(j) == i {
				continue
			}
			if h.Contains(i, j) {
				continue
			}
			// Push directly rather than via CheckedPush, which rejects j == i
			// and would make selfQuery ineffective; self and duplicates are
			// already filtered above.
			d := dist(uint32(i), j)
			if d < h.TopDistance(i) {
				h.PushUnchecked(i, d, j, true)
				filled++
			}
		}
	}
	return h
}

// FromGraph converts an already-computed (idx, dist) pair of row-major
// slices — e.g. supplied by a caller's own seeding code, or round-tripped
// from a prior run — directly into an NND heap, without drawing any new
// random candidates. This is the Go equivalent of
// original_source/src/rnn_indextograph.cpp's IndexToGraph: it assumes idx
// and dist are already each point's k nearest (or merely k plausible)
// neighbors and only restores the max-heap property and flag bookkeeping
// NND needs to keep refining them.
//
// idx and dist must each have length nPoints*k, row-major. A NPos entry
// (heap.NPos) in idx marks an empty slot and is skipped. newFlag sets the
// new/old flag every imported slot receives; pass true to have NND
// re-examine every imported edge on the first iteration, false to treat the
// import as already-settled.
func FromGraph[Out heap.Float](nPoints, k int, idx []uint32, dist []Out, newFlag bool) *heap.Heap[Out] {
	h := heap.New[Out](nPoints, k, true)
	for i := 0; i < nPoints; i++ {
		for j := 0; j < k; j++ {
			pos := i*k + j
			n := idx[pos]
			if n == heap.NPos {
				continue
			}
			h.CheckedPush(i, dist[pos], n, newFlag)
		}
	}
	return h
}
