package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/internal/rng"
)

func TestBuildSplitsByFlagAndClearsCurrent(t *testing.T) {
	current := heap.New[float32](3, 2, true)
	current.CheckedPush(0, 1.0, 1, true)  // new
	current.CheckedPush(0, 2.0, 2, false) // old

	newC, oldC := Build(current, 2, rng.New(1))

	newIdxs := RowIndices(newC, 0)
	oldIdxs := RowIndices(oldC, 0)
	require.Len(t, newIdxs, 1)
	require.Len(t, oldIdxs, 1)
	assert.Equal(t, uint32(1), newIdxs[0])
	assert.Equal(t, uint32(2), oldIdxs[0])

	// Every visited slot is now marked old (participated).
	assert.False(t, current.Flag(0, 0))
	assert.False(t, current.Flag(0, 1))
}

func TestBuildSkipsEmptySlots(t *testing.T) {
	current := heap.New[float32](2, 4, true)
	current.CheckedPush(0, 1.0, 1, true)
	// Remaining 3 slots of row 0 are sentinel NPos.

	newC, _ := Build(current, 4, rng.New(1))
	assert.Len(t, RowIndices(newC, 0), 1)
}
