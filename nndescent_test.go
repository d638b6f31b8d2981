package nndescent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nndescent/distance"
	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/testutil"
)

func lineDataset(n int) [][]float32 {
	data := make([][]float32, n)
	for i := range data {
		data[i] = []float32{float32(i), 0}
	}
	return data
}

func TestBuildFindsCloseNeighborsOnALine(t *testing.T) {
	data := lineDataset(40)

	g, err := Build(context.Background(), data, 4, WithMetric(distance.Euclidean), WithSeed(7))
	require.NoError(t, err)
	require.Equal(t, len(data), g.N)
	require.Equal(t, 4, g.K)

	idx, dist := g.Row(20)
	for j := range idx {
		require.NotEqual(t, heap.NPos, idx[j])
		assert.LessOrEqual(t, dist[j], float32(6.0))
	}
}

func TestBuildRejectsEmptyDataset(t *testing.T) {
	_, err := Build(context.Background(), nil, 3)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestBuildRejectsInvalidK(t *testing.T) {
	data := lineDataset(5)

	_, err := Build(context.Background(), data, 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = Build(context.Background(), data, 5)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestBuildRejectsDimensionMismatch(t *testing.T) {
	data := [][]float32{{0, 0}, {1, 1}, {2, 2, 2}}

	_, err := Build(context.Background(), data, 2)
	var dimErr *ErrDimensionMismatch
	require.ErrorAs(t, err, &dimErr)
}

func TestBuildRejectsInvalidRho(t *testing.T) {
	data := lineDataset(5)

	_, err := Build(context.Background(), data, 2, WithRho(0))
	var paramErr *ErrInvalidParameter
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "rho", paramErr.Name)
}

func TestBuildParallelAgreesInShapeWithSerial(t *testing.T) {
	data := lineDataset(60)

	serial, err := Build(context.Background(), data, 5, WithSeed(3))
	require.NoError(t, err)

	parallel, err := Build(context.Background(), data, 5, WithSeed(3), WithNThreads(4))
	require.NoError(t, err)

	assert.Equal(t, serial.N, parallel.N)
	assert.Equal(t, serial.K, parallel.K)
}

func TestQueryRefinesAgainstReferenceGraph(t *testing.T) {
	data := lineDataset(80)

	ref, err := Build(context.Background(), data, 5, WithSeed(11))
	require.NoError(t, err)

	queries := [][]float32{{20, 0}, {60, 0}}
	q, err := Query(context.Background(), queries, data, ref, 5, WithSeed(11))
	require.NoError(t, err)
	require.Equal(t, 2, q.N)

	idx, dist := q.Row(0)
	for j := range idx {
		require.NotEqual(t, heap.NPos, idx[j])
		assert.LessOrEqual(t, dist[j], float32(6.0))
	}
}

func TestQueryRejectsDimensionMismatch(t *testing.T) {
	data := lineDataset(10)
	ref, err := Build(context.Background(), data, 3)
	require.NoError(t, err)

	queries := [][]float32{{1, 2, 3}}
	_, err = Query(context.Background(), queries, data, ref, 3)
	var dimErr *ErrDimensionMismatch
	require.ErrorAs(t, err, &dimErr)
}

func TestBuildWithSeedGraphUsesSuppliedHeap(t *testing.T) {
	data := lineDataset(10)

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
		dist[i*2] = float64(abs(i - a))
		dist[i*2+1] = float64(abs(i - b))
	}

	g, err := Build(context.Background(), data, 2, WithSeedGraph(idx, dist, true), WithNIters(3))
	require.NoError(t, err)
	require.Equal(t, 10, g.N)

	rowIdx, _ := g.Row(5)
	for _, n := range rowIdx {
		require.NotEqual(t, heap.NPos, n)
		assert.LessOrEqual(t, abs(int(n)-5), 3)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestBuildRecallAgainstExactGroundTruth(t *testing.T) {
	rng := testutil.NewRNG(99)
	data := rng.ClusteredVectors(200, 16, 6, 0.05)

	g, err := Build(context.Background(), data, 10, WithSeed(42), WithNIters(20))
	require.NoError(t, err)

	truth := testutil.ExactTopK(data[0], data, 10, distance.L2SqrDense[float32])
	idx, dist := g.Row(0)
	approx := make([]testutil.SearchResult, len(idx))
	for i := range idx {
		approx[i] = testutil.SearchResult{ID: idx[i], Distance: float32(dist[i])}
	}

	recall := testutil.ComputeRecall(truth, approx)
	assert.GreaterOrEqual(t, recall, 0.5)
}
