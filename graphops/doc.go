// Package graphops documents its exported operators: ReverseNbrCounts,
// BuildKOGraph, DegreeAdjustedGraph, KOAdjustedGraph, MutualizeHeap,
// PartialMutualizeHeap, RemoveLongEdges(Probabilistic|Sparse), and
// MergeSparse. All take a finished graph.NNGraph or graph.SparseNNGraph and
// none mutate their input; ReverseNbrCounts returns per-point counts,
// BuildKOGraph a KOGraph, and the rest a new graph.
package graphops
