// Package queue provides a distance-ordered priority queue used to drive
// Query NND's best-first frontier expansion (spec §4.6, C6): rather than
// expanding every accepted reference point in arrival order, the query
// walks its frontier nearest-first, so the reference-graph edges most
// likely to improve the query's heap are explored before farther ones.
package queue

import "container/heap"

var _ heap.Interface = (*PriorityQueue)(nil)

// Item is one frontier entry: a reference-point index and its distance to
// the query point that queued it.
type Item struct {
	Node     uint32
	Distance float32
	index    int
}

// PriorityQueue is a min-heap of Items ordered by ascending Distance —
// Pop always returns the closest not-yet-expanded reference point.
type PriorityQueue struct {
	items []*Item
}

// Len implements heap.Interface.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Less implements heap.Interface.
func (pq *PriorityQueue) Less(i, j int) bool { return pq.items[i].Distance < pq.items[j].Distance }

// Swap implements heap.Interface.
func (pq *PriorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].index, pq.items[j].index = i, j
}

// Push implements heap.Interface; use the package-level Push to enqueue.
func (pq *PriorityQueue) Push(x any) {
	item := x.(*Item)
	item.index = len(pq.items)
	pq.items = append(pq.items, item)
}

// Pop implements heap.Interface; use the package-level Pop to dequeue.
func (pq *PriorityQueue) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	pq.items = old[:n-1]
	return item
}

// Push enqueues an entry.
func Push(pq *PriorityQueue, node uint32, dist float32) {
	heap.Push(pq, &Item{Node: node, Distance: dist})
}

// Pop dequeues and returns the closest entry. Len must be > 0.
func Pop(pq *PriorityQueue) *Item {
	return heap.Pop(pq).(*Item)
}
