package nnd

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/progress"
)

func TestBuildParallelProducesAFullSortedGraph(t *testing.T) {
	ds := gridDataset(40)
	cfg := Config{
		K:             4,
		MaxCandidates: 10,
		NIters:        10,
		Delta:         0.001,
		Rho:           1.0,
		LowMemory:     true,
		NThreads:      4,
		Seed:          11,
	}
	g, err := BuildParallel[float64](context.Background(), ds, cfg, progress.Noop{})
	require.NoError(t, err)
	assert.True(t, g.Sorted())
	assert.Equal(t, 40, g.NPoints())

	for j := 0; j < g.NNbrs(); j++ {
		idx := g.Idx(20, j)
		require.NotEqual(t, heap.NPos, idx)
		assert.LessOrEqual(t, math.Abs(float64(idx)-20), 6.0)
	}
}

func TestBuildParallelRespectsContextCancellation(t *testing.T) {
	ds := gridDataset(200)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := Config{K: 5, MaxCandidates: 15, NIters: 20, Delta: 0.001, Rho: 1.0, NThreads: 4, Seed: 1}
	_, err := BuildParallel[float64](ctx, ds, cfg, progress.Noop{})
	assert.Error(t, err)
}
