package nnd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/progress"
)

// gridDataset is points laid out on a line 0..n-1; exact nearest neighbors
// are trivially known, making recall easy to check deterministically.
func gridDataset(n int) DenseDataset[float64] {
	data := make([][]float64, n)
	for i := range data {
		data[i] = []float64{float64(i)}
	}
	return DenseDataset[float64]{
		Data: data,
		Metric: func(a, b []float64) float64 {
			return math.Abs(a[0] - b[0])
		},
	}
}

func TestBuildFindsCloseNeighborsOnASimpleLine(t *testing.T) {
	ds := gridDataset(30)
	cfg := Config{
		K:             4,
		MaxCandidates: 10,
		NIters:        10,
		Delta:         0.001,
		Rho:           1.0,
		LowMemory:     true,
		Seed:          7,
	}
	g, err := Build[float64](ds, cfg, progress.Noop{})
	require.NoError(t, err)
	require.True(t, g.Sorted())

	// Point 15's true 4 nearest neighbors on the line are 13,14,16,17, all
	// within distance 2. With generous iterations/candidates on a trivial
	// 1-D dataset, NND should land on (a close approximation of) the exact
	// neighborhood rather than something far away.
	for j := 0; j < g.NNbrs(); j++ {
		idx := g.Idx(15, j)
		require.NotEqual(t, heap.NPos, idx)
		dist := math.Abs(float64(idx) - 15)
		assert.LessOrEqual(t, dist, 4.0, "neighbor %d of point 15 is implausibly far", idx)
	}
}

func TestBuildRespectsMaxIters(t *testing.T) {
	ds := gridDataset(10)
	cfg := Config{K: 2, MaxCandidates: 2, NIters: 1, Delta: 0, Rho: 1.0, LowMemory: true, Seed: 1}
	g, err := Build[float64](ds, cfg, progress.Noop{})
	require.NoError(t, err)
	assert.Equal(t, 10, g.NPoints())
}

func TestBuildBatchedUpdaterAgreesWithStreamingOnShape(t *testing.T) {
	ds := gridDataset(20)
	base := Config{K: 3, MaxCandidates: 8, NIters: 8, Delta: 0.001, Rho: 1.0, Seed: 3}

	streaming := base
	streaming.LowMemory = true
	gs, err := Build[float64](ds, streaming, progress.Noop{})
	require.NoError(t, err)

	batched := base
	batched.LowMemory = false
	gb, err := Build[float64](ds, batched, progress.Noop{})
	require.NoError(t, err)

	assert.Equal(t, gs.NPoints(), gb.NPoints())
}

func TestBuildSeedFromGraphImportsCallerSuppliedHeap(t *testing.T) {
	ds := gridDataset(10)

	// Hand the driver an already-perfect seed (each point's two nearest
	// neighbors on the line) so it only needs a couple of refinement
	// iterations to hold that result steady.
	idx := make([]uint32, 10*2)
	dist := make([]float64, 10*2)
	for i := 0; i < 10; i++ {
		a, b := i-1, i+1
		if a < 0 {
			a = i + 2
		}
		if b >= 10 {
			b = i - 2
		}
		idx[i*2] = uint32(a)
		idx[i*2+1] = uint32(b)
		dist[i*2] = math.Abs(float64(i - a))
		dist[i*2+1] = math.Abs(float64(i - b))
	}

	cfg := Config{
		K: 2, MaxCandidates: 4, NIters: 3, Delta: 0.001, Rho: 1.0, LowMemory: true, Seed: 9,
		SeedIdx: idx, SeedDist: dist, SeedNewFlag: true,
	}
	g, err := Build[float64](ds, cfg, progress.Noop{})
	require.NoError(t, err)
	require.True(t, g.Sorted())

	for j := 0; j < g.NNbrs(); j++ {
		idx := g.Idx(5, j)
		require.NotEqual(t, heap.NPos, idx)
		assert.LessOrEqual(t, math.Abs(float64(idx)-5), 3.0)
	}
}
