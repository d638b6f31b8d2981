// Package nnd implements the NND drivers (spec §4.4–§4.6, C5/C6): the
// serial and parallel graph-construction drivers, and query refinement
// against a fixed reference graph.
package nnd

import "github.com/hupe1980/nndescent/internal/heap"

// Dataset is the minimal contract a driver needs from the point set it is
// building a graph over: how many points there are, and the distance
// between any two of them. Callers typically satisfy this with
// DenseDataset; it exists as an interface so the drivers don't care whether
// distances come from a dense matrix, a sparse one, or a cache layered over
// either.
type Dataset[Out heap.Float] interface {
	NPoints() int
	Dist(p, q uint32) Out
}

// DenseDataset adapts a dense row-major vector matrix and a distance kernel
// into a Dataset.
type DenseDataset[Out heap.Float] struct {
	Data   [][]Out
	Metric func(a, b []Out) Out
}

// NPoints implements Dataset.
func (d DenseDataset[Out]) NPoints() int { return len(d.Data) }

// Dist implements Dataset.
func (d DenseDataset[Out]) Dist(p, q uint32) Out {
	return d.Metric(d.Data[p], d.Data[q])
}

// Config holds one driver run's tunables. The root package's
// options.go translates its richer, documented Option set down into this
// before calling Build/BuildParallel/Query, keeping package nnd free of any
// dependency on the root package's logger/error types.
type Config struct {
	K             int
	MaxCandidates int
	NIters        int
	Delta         float64
	Rho           float64
	LowMemory     bool
	NThreads      int
	Seed          int64

	// SeedIdx and SeedDist, when both non-nil, import an already-computed
	// n_points*K (idx, dist) pair via seed.FromGraph instead of drawing a
	// fresh random heap (spec §9's SeedFromGraph strategy). SeedNewFlag
	// controls whether imported edges are re-examined on the first
	// iteration.
	SeedIdx     []uint32
	SeedDist    []float64 // converted to Out by the driver
	SeedNewFlag bool
}

// DistFunc evaluates the configured distance metric between two point
// indices.
type DistFunc[Out heap.Float] func(p, q uint32) Out
