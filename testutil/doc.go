// Package testutil provides testing utilities for nndescent.
//
// This package is intended for use in tests and benchmarks only. It
// provides helpers for generating random vectors, computing exact nearest
// neighbors, and verifying approximate-search recall against that ground
// truth.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.UniformVectors(1000, 32)   // uniform [0, 1)
//	unit := rng.UnitVectors(1000, 32)      // L2-normalized, for Cosine tests
//
// # Exact Search (Ground Truth)
//
//	truth := testutil.ExactTopK(query, dataset, k, dist)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(truth, approx)
package testutil
