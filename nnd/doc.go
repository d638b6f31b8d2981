// Package nnd provides three entry points: Build (serial),
// BuildParallel, and Query. All three return a *heap.Heap already passed
// through DeheapSort, ready for the graph package to convert into a
// caller-facing NN graph.
package nnd
