// Package candidate implements the NND candidate builder (spec §4.2, C3):
// from the current graph, it produces per-point "new" and "old" heaps of
// size max_candidates, keyed by a fresh pseudo-random priority rather than
// by distance, and performs the incremental "flag retained new" bookkeeping
// that keeps later iterations from re-evaluating already-joined pairs.
package candidate

import (
	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/internal/rng"
)

// Build scans current row by row. For every occupied slot it draws a fresh
// uniform weight and pushes the neighbor into the new or old candidate heap
// according to that slot's flag, then clears the slot's flag in current —
// marking it as having participated in a local join. This matches
// original_source/src/nndescent.h's build_candidates, which clears the flag
// unconditionally per visited slot rather than conditionally on candidate-
// heap acceptance; see DESIGN.md for why this is the correct reading of the
// (more loosely worded) spec text.
func Build[Out heap.Float](current *heap.Heap[Out], maxCandidates int, r rng.Source) (newC, oldC *heap.Heap[float32]) {
	n := current.NPoints()
	newC = heap.New[float32](n, maxCandidates, false)
	oldC = heap.New[float32](n, maxCandidates, false)

	for i := 0; i < n; i++ {
		for j := 0; j < current.NNbrs(); j++ {
			idx := current.Idx(i, j)
			if idx == heap.NPos {
				continue
			}
			isNew := current.Flag(i, j)
			w := float32(r.Float64())
			if isNew {
				newC.CheckedPushPair(i, idx, w, false)
			} else {
				oldC.CheckedPushPair(i, idx, w, false)
			}
			current.SetFlag(i, j, false)
		}
	}
	return newC, oldC
}

// RowIndices returns the valid (non-sentinel) neighbor indices in row i of a
// candidate heap, in heap-storage order (not distance/priority order — the
// candidate heap is keyed by random weight, not by true distance).
func RowIndices(c *heap.Heap[float32], i int) []uint32 {
	n := c.NNbrs()
	out := make([]uint32, 0, n)
	for j := 0; j < n; j++ {
		if idx := c.Idx(i, j); idx != heap.NPos {
			out = append(out, idx)
		}
	}
	return out
}
