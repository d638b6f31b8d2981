// Package nndescent builds and refines approximate k-nearest-neighbor graphs
// using Nearest Neighbor Descent (NND).
//
// Given a set of reference points and a distance metric, NNDescent iteratively
// refines a coarse k-NN graph toward the true k-NN graph by repeatedly sampling
// candidate neighbors and evaluating local joins between them. It also supports
// querying a held-out set of points against an already-built reference graph.
//
// # Quick Start
//
//	data := [][]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {3, 3}}
//	g, err := nndescent.Build(ctx, data, 3, nndescent.WithMetric(distance.Euclidean))
//	if err != nil {
//	    // handle err
//	}
//	for i := 0; i < g.N; i++ {
//	    idx, dist := g.Row(i)
//	    fmt.Println(i, idx, dist)
//	}
//
// Querying a held-out set against a reference graph:
//
//	q, err := nndescent.Query(ctx, queries, data, g, 3)
//
// # Parallelism
//
// Passing WithNThreads(n) with n > 1 switches to the parallel driver, which
// shards heap rows across a striped mutex bank and fans local joins out
// across a bounded worker pool; candidate generation stays serial. n <= 1
// (the default) runs the serial driver.
//
// # Convergence
//
// NNDescent stops when the number of updated edges in an iteration falls at
// or below delta * k * n_points (WithDelta), or after n_iters iterations
// (WithNIters), or when the supplied Progress reports an interrupt. All
// three are completion statuses, not errors; the returned graph is whatever
// was accumulated so far.
package nndescent
