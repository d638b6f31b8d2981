package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/nndescent/internal/heap"
)

func TestFromHeapCopiesSortedRows(t *testing.T) {
	h := heap.New[float32](2, 2, false)
	h.CheckedPush(0, 1.0, 1, false)
	h.CheckedPush(1, 1.0, 0, false)
	h.DeheapSort()

	g := FromHeap(h)
	idx, dist := g.Row(0)
	assert.Equal(t, uint32(1), idx[0])
	assert.Equal(t, float32(1.0), dist[0])
}

func TestFromDenseRowsBuildsValidCSR(t *testing.T) {
	h := heap.New[float32](2, 2, false)
	h.CheckedPush(0, 1.0, 1, false)
	h.DeheapSort()

	g := FromDenseRows(h, nil)
	assert.Equal(t, []int{0, 1, 1}, g.RowPtr)
	assert.Equal(t, 1, g.Degree(0))
	assert.Equal(t, 0, g.Degree(1))
	idx, _ := g.Row(0)
	assert.Equal(t, []uint32{1}, idx)
}

func TestFromDenseRowsHonorsKeepMask(t *testing.T) {
	h := heap.New[float32](1, 2, false)
	h.CheckedPush(0, 1.0, 1, false)
	h.DeheapSort()

	g := FromDenseRows(h, func(i, j int) bool { return false })
	assert.Equal(t, 0, g.Degree(0))
}

func TestOneBasedRoundTrip(t *testing.T) {
	idx := []uint32{0, 5, heap.NPos}
	one := ToOneBased(idx)
	assert.Equal(t, []uint32{1, 6, 0}, one)
	back := FromOneBased(one)
	assert.Equal(t, idx, back)
}
