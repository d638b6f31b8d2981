// Package heap implements the bounded neighbor heap: a row-major collection
// of per-point fixed-capacity max-heaps keyed by distance, the foundational
// data structure NND is built on (spec §3, §4.1).
//
// Each row holds at most n_nbrs entries of (distance, index, flag). Slot 0
// of a row always holds the current maximum distance in that row. Rows
// dedup on insert: a neighbor index appears at most once per row.
package heap

import "math"

// Float is the constraint satisfied by the two output-distance types the
// spec allows (f32 default, f64 available).
type Float interface {
	~float32 | ~float64
}

// NPos is the sentinel neighbor index marking an empty slot. It is the
// maximum value of the unsigned index type and must never be a valid
// neighbor.
const NPos uint32 = math.MaxUint32

// Heap is a row-major collection of n_points rows, each a fixed-capacity
// max-heap of up to n_nbrs (distance, index, flag) entries.
//
// Flags are only meaningful for "NND heaps" (spec §3: carries flags,
// deduplicates per-row). Heaps built with withFlags=false ("NN heaps") still
// allocate the flags slice (so CheckedPush has one code path) but callers
// should treat its contents as undefined; FlagsEnabled reports which mode a
// heap is in.
type Heap[Out Float] struct {
	nPoints, nNbrs int
	dist           []Out
	idx            []uint32
	flags          []bool
	flagsEnabled   bool
	sorted         bool
}

// New allocates a heap with nPoints rows of capacity nNbrs, every slot
// initialized to the sentinel (+Inf, NPos, true) per spec §3 Lifecycle.
func New[Out Float](nPoints, nNbrs int, withFlags bool) *Heap[Out] {
	h := &Heap[Out]{
		nPoints:      nPoints,
		nNbrs:        nNbrs,
		dist:         make([]Out, nPoints*nNbrs),
		idx:          make([]uint32, nPoints*nNbrs),
		flags:        make([]bool, nPoints*nNbrs),
		flagsEnabled: withFlags,
	}
	inf := Out(math.Inf(1))
	for i := range h.dist {
		h.dist[i] = inf
		h.idx[i] = NPos
		h.flags[i] = true
	}
	return h
}

// NPoints returns the number of rows.
func (h *Heap[Out]) NPoints() int { return h.nPoints }

// NNbrs returns the per-row capacity.
func (h *Heap[Out]) NNbrs() int { return h.nNbrs }

// FlagsEnabled reports whether this heap carries meaningful new/old flags.
func (h *Heap[Out]) FlagsEnabled() bool { return h.flagsEnabled }

// Sorted reports whether DeheapSort has already been applied; a sorted
// heap's max-heap property no longer holds (spec §3 Invariants).
func (h *Heap[Out]) Sorted() bool { return h.sorted }

func (h *Heap[Out]) rowStart(i int) int { return i * h.nNbrs }

// Dist returns the distance at row i, slot j.
func (h *Heap[Out]) Dist(i, j int) Out { return h.dist[h.rowStart(i)+j] }

// Idx returns the neighbor index at row i, slot j.
func (h *Heap[Out]) Idx(i, j int) uint32 { return h.idx[h.rowStart(i)+j] }

// Flag returns the new/old flag at row i, slot j.
func (h *Heap[Out]) Flag(i, j int) bool { return h.flags[h.rowStart(i)+j] }

// SetFlag overwrites the flag at row i, slot j without touching the heap
// property. Used by the candidate builder's "flag retained new" bookkeeping
// (spec §4.2).
func (h *Heap[Out]) SetFlag(i, j int, flag bool) { h.flags[h.rowStart(i)+j] = flag }

// TopDistance returns the distance stored in slot 0 of row i: the worst
// (largest) distance currently kept for that point.
func (h *Heap[Out]) TopDistance(i int) Out {
	return h.dist[h.rowStart(i)]
}

// Contains reports whether index j already occupies some slot in row i.
func (h *Heap[Out]) Contains(i int, j uint32) bool {
	start := h.rowStart(i)
	for s := 0; s < h.nNbrs; s++ {
		if h.idx[start+s] == j {
			return true
		}
	}
	return false
}

// PushUnchecked inserts (d, j, flag) into row i, assuming d < TopDistance(i)
// and j is not already present in the row. Restores the max-heap property
// by sifting down from the root.
func (h *Heap[Out]) PushUnchecked(i int, d Out, j uint32, flag bool) {
	start := h.rowStart(i)
	h.dist[start] = d
	h.idx[start] = j
	h.flags[start] = flag
	h.siftDown(i, 0)
}

// CheckedPush attempts to insert (d, j, flag) into row i.
//
// Returns 0 without modifying the row if d is not strictly less than the
// current top distance (ties are rejected, preserving determinism per
// spec §4.1 Edge cases), if j == i (no self-edges), or if j already
// occupies the row. Otherwise replaces the top entry and restores the heap
// property, returning 1.
func (h *Heap[Out]) CheckedPush(i int, d Out, j uint32, flag bool) int {
	if uint32(i) == j {
		return 0
	}
	if d >= h.TopDistance(i) {
		return 0
	}
	if h.Contains(i, j) {
		return 0
	}
	h.PushUnchecked(i, d, j, flag)
	return 1
}

// CheckedPushPair performs CheckedPush(i, d, j, flag) and CheckedPush(j, d,
// i, flag), returning the sum of the two outcomes (0, 1, or 2). Only valid
// when i and j index the same point set (spec §4.1).
func (h *Heap[Out]) CheckedPushPair(i int, j uint32, d Out, flag bool) int {
	c := h.CheckedPush(i, d, j, flag)
	if int(j) < h.nPoints {
		c += h.CheckedPush(int(j), d, uint32(i), flag)
	}
	return c
}

func (h *Heap[Out]) less(i, a, b int) bool {
	start := h.rowStart(i)
	return h.dist[start+a] > h.dist[start+b]
}

func (h *Heap[Out]) swap(i, a, b int) {
	start := h.rowStart(i)
	h.dist[start+a], h.dist[start+b] = h.dist[start+b], h.dist[start+a]
	h.idx[start+a], h.idx[start+b] = h.idx[start+b], h.idx[start+a]
	h.flags[start+a], h.flags[start+b] = h.flags[start+b], h.flags[start+a]
}

func (h *Heap[Out]) siftDown(i, pos int) {
	n := h.nNbrs
	for {
		l := 2*pos + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && h.less(i, r, l) {
			best = r
		}
		if !h.less(i, best, pos) {
			return
		}
		h.swap(i, pos, best)
		pos = best
	}
}

// DeheapSort destructively transforms every row's max-heap into ascending-
// distance order. Idempotent: sorting an already-sorted heap (or an empty
// one) is a no-op. After this call the max-heap property no longer holds
// (spec §3 Invariants) and the heap must not be pushed into again.
func (h *Heap[Out]) DeheapSort() {
	if h.sorted {
		return
	}
	for i := 0; i < h.nPoints; i++ {
		start := h.rowStart(i)
		for last := h.nNbrs - 1; last > 0; last-- {
			h.swap(i, 0, last)
			h.siftDownBounded(i, 0, last)
		}
		_ = start
	}
	h.sorted = true
}

// siftDownBounded is siftDown restricted to the still-live prefix [0, size)
// of a row, used while shrinking the heap during DeheapSort.
func (h *Heap[Out]) siftDownBounded(i, pos, size int) {
	for {
		l := 2*pos + 1
		if l >= size {
			return
		}
		best := l
		r := l + 1
		if r < size && h.less(i, r, l) {
			best = r
		}
		if !h.less(i, best, pos) {
			return
		}
		h.swap(i, pos, best)
		pos = best
	}
}

// Clear resets slot (i, j) back to its sentinel state without touching the
// rest of the row. Used by the serial driver's rho-sampling pass (spec
// §4.4) to discard a subset of candidates before they're joined, without
// disturbing the heap's row-major layout.
func (h *Heap[Out]) Clear(i, j int) {
	pos := h.rowStart(i) + j
	h.dist[pos] = Out(math.Inf(1))
	h.idx[pos] = NPos
	h.flags[pos] = true
}

// Clone returns a deep copy of h.
func (h *Heap[Out]) Clone() *Heap[Out] {
	c := &Heap[Out]{
		nPoints:      h.nPoints,
		nNbrs:        h.nNbrs,
		dist:         append([]Out(nil), h.dist...),
		idx:          append([]uint32(nil), h.idx...),
		flags:        append([]bool(nil), h.flags...),
		flagsEnabled: h.flagsEnabled,
		sorted:       h.sorted,
	}
	return c
}
