package graphops

import (
	"sort"

	"github.com/hupe1980/nndescent/graph"
	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/internal/rng"
)

// DistFunc evaluates the distance between two dataset point indices —
// occlusion pruning needs point-to-point distances the graph itself
// doesn't store (distance between two of a row's neighbors, not between
// the row's own point and a neighbor).
type DistFunc[Out heap.Float] func(a, b uint32) Out

// RemoveLongEdges prunes each row down to its "diverse" neighbors: walking
// candidates nearest-first, a candidate c is dropped if some
// already-kept neighbor p occludes it — p is strictly closer to c than the
// row's own point is (spec §4.7's occlusion pruning / RNG-style diversify
// pass, the deterministic variant). This removes redundant long edges a
// plain k-NN row accumulates when several neighbors cluster in the same
// direction, while always keeping at least the single nearest neighbor.
func RemoveLongEdges[Out heap.Float](g *graph.NNGraph[Out], dist DistFunc[Out]) *graph.SparseNNGraph[Out] {
	return removeLongEdges(g, dist, 1, nil)
}

// RemoveLongEdgesProbabilistic is RemoveLongEdges' probabilistic variant
// (spec §4.7): an occluded candidate is dropped with probability
// pruneProbability instead of unconditionally, trading the deterministic
// form's smaller, purely diverse graph for one that retains some of the
// occluded redundancy — useful when a query-time search benefits from
// alternate paths the strict form would have discarded.
// pruneProbability=1.0 drops every occluded candidate, same as
// RemoveLongEdges; pruneProbability=0.0 drops none.
func RemoveLongEdgesProbabilistic[Out heap.Float](g *graph.NNGraph[Out], dist DistFunc[Out], pruneProbability float64, r rng.Source) *graph.SparseNNGraph[Out] {
	return removeLongEdges(g, dist, pruneProbability, r)
}

func removeLongEdges[Out heap.Float](g *graph.NNGraph[Out], dist DistFunc[Out], pruneProbability float64, r rng.Source) *graph.SparseNNGraph[Out] {
	rowPtr := make([]int, g.N+1)
	var colIdx []uint32
	var distOut []Out

	type entry struct {
		idx  uint32
		dist Out
	}

	for i := 0; i < g.N; i++ {
		idxRow, distRow := g.Row(i)
		entries := make([]entry, 0, len(idxRow))
		for j := range idxRow {
			if idxRow[j] != heap.NPos {
				entries = append(entries, entry{idxRow[j], distRow[j]})
			}
		}
		sort.Slice(entries, func(a, b int) bool { return entries[a].dist < entries[b].dist })

		kept := make([]entry, 0, len(entries))
		for _, e := range entries {
			occluded := false
			for _, k := range kept {
				if dist(k.idx, e.idx) < e.dist {
					occluded = true
					break
				}
			}
			drop := occluded && (r == nil || r.Float64() < pruneProbability)
			if !drop {
				kept = append(kept, e)
			}
		}

		for _, e := range kept {
			colIdx = append(colIdx, e.idx)
			distOut = append(distOut, e.dist)
		}
		rowPtr[i+1] = len(colIdx)
	}

	return &graph.SparseNNGraph[Out]{RowPtr: rowPtr, ColIdx: colIdx, Dist: distOut, N: g.N}
}

// RemoveLongEdgesSparse is RemoveLongEdges specialized to an
// already-sparse input graph (e.g. the output of a prior pruning or merge
// pass), avoiding a round-trip through the dense form.
func RemoveLongEdgesSparse[Out heap.Float](g *graph.SparseNNGraph[Out], dist DistFunc[Out]) *graph.SparseNNGraph[Out] {
	rowPtr := make([]int, g.N+1)
	var colIdx []uint32
	var distOut []Out

	type entry struct {
		idx  uint32
		dist Out
	}

	for i := 0; i < g.N; i++ {
		idxRow, distRow := g.Row(i)
		entries := make([]entry, len(idxRow))
		for j := range idxRow {
			entries[j] = entry{idxRow[j], distRow[j]}
		}
		sort.Slice(entries, func(a, b int) bool { return entries[a].dist < entries[b].dist })

		kept := make([]entry, 0, len(entries))
		for _, e := range entries {
			occluded := false
			for _, k := range kept {
				if dist(k.idx, e.idx) < e.dist {
					occluded = true
					break
				}
			}
			if !occluded {
				kept = append(kept, e)
			}
		}

		for _, e := range kept {
			colIdx = append(colIdx, e.idx)
			distOut = append(distOut, e.dist)
		}
		rowPtr[i+1] = len(colIdx)
	}

	return &graph.SparseNNGraph[Out]{RowPtr: rowPtr, ColIdx: colIdx, Dist: distOut, N: g.N}
}
