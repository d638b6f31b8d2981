package graphops

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/nndescent/graph"
	"github.com/hupe1980/nndescent/internal/heap"
)

// MutualizeHeap returns a new graph holding the symmetric union of g's
// edges: every original (i, j, d) is pushed into row i, and its reverse
// (j, i, d) is pushed into row j, via heap.CheckedPushPair — so an edge
// never needs to be reciprocated to survive, and a point picks up any
// reverse neighbor whose distance beats its current worst entry (hub.h's
// mutualize_heap). The output heap has the same per-row capacity as g.
func MutualizeHeap[Out heap.Float](g *graph.NNGraph[Out]) *graph.NNGraph[Out] {
	h := heap.New[Out](g.N, g.K, false)
	for i := 0; i < g.N; i++ {
		idx, dist := g.Row(i)
		for j := range idx {
			if idx[j] == heap.NPos {
				continue
			}
			h.CheckedPushPair(i, idx[j], dist[j], false)
		}
	}
	h.DeheapSort()
	return graph.FromHeap(h)
}

// PartialMutualizeHeap returns a new graph where every row keeps all of
// its original forward neighbors, then pads remaining slots — up to
// capacity, which must exceed g.K — with the row's closest reverse
// neighbors not already present (hub.h's partial_mutualize_heap). Unlike
// MutualizeHeap, a row's own forward edges are copied in unconditionally
// first, so they are never at risk of eviction by a reverse candidate.
func PartialMutualizeHeap[Out heap.Float](g *graph.NNGraph[Out], capacity int) *graph.NNGraph[Out] {
	revNbrs := reverseNeighbors(g, capacity)

	out := &graph.NNGraph[Out]{
		Idx:  make([]uint32, g.N*capacity),
		Dist: make([]Out, g.N*capacity),
		N:    g.N,
		K:    capacity,
	}

	for i := 0; i < g.N; i++ {
		fwdIdx, fwdDist := g.Row(i)

		seen := roaring.New()
		entries := make([]reverseEdge[Out], 0, capacity)
		for j := range fwdIdx {
			if fwdIdx[j] == heap.NPos {
				continue
			}
			entries = append(entries, reverseEdge[Out]{fwdIdx[j], fwdDist[j]})
			seen.Add(fwdIdx[j])
		}

		for _, e := range revNbrs[i] {
			if len(entries) >= capacity {
				break
			}
			if e.idx == uint32(i) || seen.Contains(e.idx) {
				continue
			}
			seen.Add(e.idx)
			entries = append(entries, e)
		}

		for j, e := range entries {
			out.Idx[i*capacity+j] = e.idx
			out.Dist[i*capacity+j] = e.dist
		}
		for j := len(entries); j < capacity; j++ {
			out.Idx[i*capacity+j] = heap.NPos
		}
	}
	return out
}

// reverseEdge pairs a reverse neighbor's index with the original edge's
// distance — symmetric metrics make d(i,j) == d(j,i), so the forward
// edge's distance doubles as the reverse edge's distance.
type reverseEdge[Out heap.Float] struct {
	idx  uint32
	dist Out
}

// reverseNeighbors collects, for every point i, the reverse edges (j, d)
// for each j whose forward row lists i as a neighbor at distance d —
// hub.h's reverse_heap — sorted closest-first and capped to cap entries
// per point.
func reverseNeighbors[Out heap.Float](g *graph.NNGraph[Out], cap int) [][]reverseEdge[Out] {
	out := make([][]reverseEdge[Out], g.N)
	for i := 0; i < g.N; i++ {
		idx, dist := g.Row(i)
		for j := range idx {
			if idx[j] == heap.NPos {
				continue
			}
			nbr := idx[j]
			out[nbr] = append(out[nbr], reverseEdge[Out]{uint32(i), dist[j]})
		}
	}
	for i := range out {
		sort.Slice(out[i], func(a, b int) bool { return out[i][a].dist < out[i][b].dist })
		if len(out[i]) > cap {
			out[i] = out[i][:cap]
		}
	}
	return out
}
