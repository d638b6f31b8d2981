package heap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSentinels(t *testing.T) {
	h := New[float32](3, 2, true)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(t, NPos, h.Idx(i, j))
			assert.True(t, math.IsInf(float64(h.Dist(i, j)), 1))
			assert.True(t, h.Flag(i, j))
		}
	}
}

func TestCheckedPushRejectsIdentityAndTies(t *testing.T) {
	h := New[float32](3, 2, true)

	// Identity insert is rejected.
	assert.Equal(t, 0, h.CheckedPush(0, 0.5, 0, true))

	// First real insert succeeds (replaces +Inf sentinel).
	assert.Equal(t, 1, h.CheckedPush(0, 1.0, 1, true))
	assert.Equal(t, 1, h.CheckedPush(0, 2.0, 2, true))

	// Now top distance is 2.0; a tie is rejected (strict less-than).
	assert.Equal(t, float32(2.0), h.TopDistance(0))
	assert.Equal(t, 0, h.CheckedPush(0, 2.0, 3, true))

	// Duplicate index rejected even with a strictly smaller distance.
	assert.Equal(t, 0, h.CheckedPush(0, 0.1, 1, true))
}

func TestCheckedPushNoDuplicates(t *testing.T) {
	h := New[float32](2, 3, true)
	assert.Equal(t, 1, h.CheckedPush(0, 3.0, 1, true))
	assert.Equal(t, 0, h.CheckedPush(0, 2.0, 1, true)) // closer dist, same idx -> rejected, no duplicate

	count := 0
	for j := 0; j < 3; j++ {
		if h.Idx(0, j) == 1 {
			count++
		}
	}
	assert.Equal(t, 1, count, "row must contain at most one entry per neighbor index")
}

func TestCheckedPushPairSymmetric(t *testing.T) {
	h := New[float32](4, 2, true)
	n := h.CheckedPushPair(0, 1, 1.5, true)
	assert.Equal(t, 2, n)

	found01, found10 := false, false
	for j := 0; j < 2; j++ {
		if h.Idx(0, j) == 1 {
			found01 = true
			assert.Equal(t, float32(1.5), h.Dist(0, j))
		}
		if h.Idx(1, j) == 0 {
			found10 = true
			assert.Equal(t, float32(1.5), h.Dist(1, j))
		}
	}
	assert.True(t, found01)
	assert.True(t, found10)
}

func TestRowNeverExceedsTop(t *testing.T) {
	h := New[float32](1, 4, true)
	dists := []float32{5, 2, 8, 1, 9, 0.5}
	for j, d := range dists {
		h.CheckedPush(0, d, uint32(10+j), true)
	}
	top := h.TopDistance(0)
	for j := 0; j < 4; j++ {
		d := h.Dist(0, j)
		if h.Idx(0, j) != NPos {
			assert.LessOrEqual(t, d, top)
		}
	}
}

func TestDeheapSortAscendingAndIdempotent(t *testing.T) {
	h := New[float32](1, 4, true)
	dists := []float32{5, 2, 8, 1}
	for j, d := range dists {
		h.CheckedPush(0, d, uint32(j), true)
	}
	h.DeheapSort()
	require.True(t, h.Sorted())

	prev := float32(-1)
	for j := 0; j < 4; j++ {
		d := h.Dist(0, j)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}

	// Idempotent: sorting again does not alter the row.
	before := make([]float32, 4)
	for j := 0; j < 4; j++ {
		before[j] = h.Dist(0, j)
	}
	h.DeheapSort()
	for j := 0; j < 4; j++ {
		assert.Equal(t, before[j], h.Dist(0, j))
	}
}

func TestDeheapSortEmptyRow(t *testing.T) {
	h := New[float32](2, 3, true)
	h.DeheapSort()
	assert.True(t, h.Sorted())
	for j := 0; j < 3; j++ {
		assert.Equal(t, NPos, h.Idx(0, j))
	}
}

func TestCloneIndependent(t *testing.T) {
	h := New[float32](2, 2, true)
	h.CheckedPush(0, 1.0, 1, true)
	c := h.Clone()
	c.CheckedPush(0, 0.5, 1, true) // no-op: dup idx; try a fresh idx instead
	c.CheckedPush(1, 0.1, 0, true)
	// Row 1 is not full, so the +Inf sentinel stays at the max-heap root
	// (slot 0) and the pushed entry sits in slot 1.
	assert.Equal(t, NPos, h.Idx(1, 1))
	assert.Equal(t, uint32(0), c.Idx(1, 1))
}
