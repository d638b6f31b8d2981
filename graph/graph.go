// Package graph provides the caller-facing NN graph types (spec §6 Graph
// I/O format): a dense row-major form matching the bounded neighbor heap's
// layout directly, a sparse CSR form for graphops' occlusion-pruned output,
// and the 0-based/1-based index translation the spec calls out (the
// reference NND implementation this module is grounded on is 1-indexed;
// everything in this Go module is 0-indexed, so conversion is only needed
// at an explicit I/O boundary, never internally).
package graph

import "github.com/hupe1980/nndescent/internal/heap"

// NNGraph is a dense row-major nearest-neighbor graph: row i holds its K
// neighbor indices in Idx and the matching distances in Dist, both already
// sorted ascending by distance.
type NNGraph[Out heap.Float] struct {
	Idx  []uint32
	Dist []Out
	N    int
	K    int
}

// Row returns point i's neighbor indices and distances as slices sharing
// NNGraph's backing array.
func (g *NNGraph[Out]) Row(i int) ([]uint32, []Out) {
	start := i * g.K
	return g.Idx[start : start+g.K], g.Dist[start : start+g.K]
}

// FromHeap converts a deheap-sorted *heap.Heap into a dense NNGraph. The
// heap must already have had DeheapSort called (spec §3: unsorted heaps
// carry the max-heap property, not ascending order).
func FromHeap[Out heap.Float](h *heap.Heap[Out]) *NNGraph[Out] {
	n, k := h.NPoints(), h.NNbrs()
	g := &NNGraph[Out]{
		Idx:  make([]uint32, n*k),
		Dist: make([]Out, n*k),
		N:    n,
		K:    k,
	}
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			g.Idx[i*k+j] = h.Idx(i, j)
			g.Dist[i*k+j] = h.Dist(i, j)
		}
	}
	return g
}

// SparseNNGraph is a CSR-encoded nearest-neighbor graph: row i's neighbors
// are ColIdx[RowPtr[i]:RowPtr[i+1]] with matching distances in the same
// slice range of Dist. Produced by graphops' occlusion pruning and sparse
// merge, which drop a variable number of edges per row so a dense fixed-K
// layout no longer fits.
type SparseNNGraph[Out heap.Float] struct {
	RowPtr []int
	ColIdx []uint32
	Dist   []Out
	N      int
}

// Row returns point i's neighbor indices and distances.
func (g *SparseNNGraph[Out]) Row(i int) ([]uint32, []Out) {
	start, end := g.RowPtr[i], g.RowPtr[i+1]
	return g.ColIdx[start:end], g.Dist[start:end]
}

// Degree returns the number of neighbors stored for point i.
func (g *SparseNNGraph[Out]) Degree(i int) int {
	return g.RowPtr[i+1] - g.RowPtr[i]
}

// FromDenseRows builds a SparseNNGraph from a dense heap plus a per-row
// keep-mask (true = keep that slot), the shape graphops' pruning passes
// produce before they can be expressed as CSR.
func FromDenseRows[Out heap.Float](h *heap.Heap[Out], keep func(i, j int) bool) *SparseNNGraph[Out] {
	n, k := h.NPoints(), h.NNbrs()
	rowPtr := make([]int, n+1)
	var colIdx []uint32
	var dist []Out

	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			if h.Idx(i, j) == heap.NPos {
				continue
			}
			if keep != nil && !keep(i, j) {
				continue
			}
			colIdx = append(colIdx, h.Idx(i, j))
			dist = append(dist, h.Dist(i, j))
		}
		rowPtr[i+1] = len(colIdx)
	}
	return &SparseNNGraph[Out]{RowPtr: rowPtr, ColIdx: colIdx, Dist: dist, N: n}
}

// ToOneBased returns a copy of idx with every entry incremented by 1, and
// NPos slots mapped to 0 — the convention the 1-indexed reference
// implementation (and R, which NND's original host language targets) uses
// for "no neighbor" in a graph serialized for interop. Use at an explicit
// I/O boundary only.
func ToOneBased(idx []uint32) []uint32 {
	out := make([]uint32, len(idx))
	for i, v := range idx {
		if v == heap.NPos {
			out[i] = 0
		} else {
			out[i] = v + 1
		}
	}
	return out
}

// FromOneBased is the inverse of ToOneBased: 0 maps back to heap.NPos,
// everything else is decremented by 1.
func FromOneBased(idx []uint32) []uint32 {
	out := make([]uint32, len(idx))
	for i, v := range idx {
		if v == 0 {
			out[i] = heap.NPos
		} else {
			out[i] = v - 1
		}
	}
	return out
}
