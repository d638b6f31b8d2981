package update

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/nndescent/internal/candidate"
	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/internal/rng"
)

// line is a tiny 1-D dataset so distances are trivial to reason about.
func lineDist(pts []float32) DistFunc[float32] {
	return func(p, q uint32) float32 {
		d := pts[p] - pts[q]
		return float32(math.Abs(float64(d)))
	}
}

func TestStreamingSkipsSelfPairs(t *testing.T) {
	pts := []float32{0, 1, 2, 3}
	current := heap.New[float32](4, 2, true)
	// Seed row 0 with candidates 1 and 2, both "new".
	current.CheckedPush(0, 1, 1, true)
	current.CheckedPush(0, 2, 2, true)

	newC, oldC := candidate.Build(current, 2, rng.New(7))
	u := Streaming[float32]{}
	updates := u.Generate(current, newC, oldC, lineDist(pts))
	assert.GreaterOrEqual(t, updates, 0)

	// No row ever contains itself as a neighbor.
	for i := 0; i < current.NPoints(); i++ {
		for j := 0; j < current.NNbrs(); j++ {
			assert.NotEqual(t, uint32(i), current.Idx(i, j))
		}
	}
}

func TestBatchedJoinsSharedNewCandidates(t *testing.T) {
	current := heap.New[float32](3, 2, true)
	current.CheckedPush(0, 1, 1, true)
	current.CheckedPush(0, 2, 2, true)

	// 1 and 2 are both new candidates of point 0, so Batched must evaluate
	// the (1, 2) pair and apply it via CheckedPushPair.
	calls := 0
	dist := func(p, q uint32) float32 {
		calls++
		return 0.5
	}

	newC, oldC := candidate.Build(current, 2, rng.New(3))
	u := Batched[float32]{}
	u.Generate(current, newC, oldC, dist)

	found := false
	for j := 0; j < current.NNbrs(); j++ {
		if current.Idx(1, j) == 2 {
			found = true
		}
	}
	assert.True(t, found, "batched updater should have joined 1 and 2 via their shared new-candidate membership")
}

func TestStreamingAndBatchedBothSkipNPos(t *testing.T) {
	current := heap.New[float32](2, 3, true)
	newC := heap.New[float32](2, 3, false)
	oldC := heap.New[float32](2, 3, false)
	// Leave newC/oldC entirely at sentinel values.

	dist := func(p, q uint32) float32 {
		t.Fatalf("distance should never be evaluated when candidates are all sentinel")
		return 0
	}

	s := Streaming[float32]{}
	assert.Equal(t, 0, s.Generate(current, newC, oldC, dist))

	b := Batched[float32]{}
	assert.Equal(t, 0, b.Generate(current, newC, oldC, dist))
}
