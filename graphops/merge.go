package graphops

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/nndescent/graph"
	"github.com/hupe1980/nndescent/internal/heap"
)

// MergeSparse unions two sparse graphs over the same N points, row by row,
// deduplicating a neighbor that appears in both inputs by keeping the
// smaller of its two recorded distances, and capping each merged row at
// maxDegree (closest first) — the combine step for, e.g., joining a
// k-occurrence-derived graph with an occlusion-pruned one, or merging two
// independently-built candidate graphs before a final prune (spec §4.7
// sparse graph merge).
func MergeSparse[Out heap.Float](a, b *graph.SparseNNGraph[Out], maxDegree int) *graph.SparseNNGraph[Out] {
	n := a.N
	rowPtr := make([]int, n+1)
	var colIdx []uint32
	var dist []Out

	type entry struct {
		idx  uint32
		dist Out
	}

	for i := 0; i < n; i++ {
		best := map[uint32]Out{}
		order := roaring.New()

		addRow := func(idxRow []uint32, distRow []Out) {
			for j, id := range idxRow {
				if d, ok := best[id]; !ok || distRow[j] < d {
					best[id] = distRow[j]
				}
				order.Add(id)
			}
		}
		ai, ad := a.Row(i)
		addRow(ai, ad)
		bi, bd := b.Row(i)
		addRow(bi, bd)

		entries := make([]entry, 0, order.GetCardinality())
		it := order.Iterator()
		for it.HasNext() {
			id := it.Next()
			entries = append(entries, entry{id, best[id]})
		}
		sort.Slice(entries, func(x, y int) bool { return entries[x].dist < entries[y].dist })
		if maxDegree > 0 && len(entries) > maxDegree {
			entries = entries[:maxDegree]
		}

		for _, e := range entries {
			colIdx = append(colIdx, e.idx)
			dist = append(dist, e.dist)
		}
		rowPtr[i+1] = len(colIdx)
	}

	return &graph.SparseNNGraph[Out]{RowPtr: rowPtr, ColIdx: colIdx, Dist: dist, N: n}
}
