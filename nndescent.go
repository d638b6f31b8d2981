package nndescent

import (
	"context"

	"github.com/hupe1980/nndescent/distance"
	"github.com/hupe1980/nndescent/graph"
	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/nnd"
)

// Build constructs an approximate k-nearest-neighbor graph over data using
// Nearest Neighbor Descent (spec §4.4/§4.5, C5). With WithNThreads(n) for
// n > 1 it runs the parallel driver; otherwise the serial one. The returned
// graph's rows are sorted ascending by distance.
func Build(ctx context.Context, data [][]float32, k int, optFns ...Option) (*graph.NNGraph[float32], error) {
	cfg := applyOptions(append([]Option{WithK(k)}, optFns...))
	cfg.k = k

	if err := validateBuild(data, cfg); err != nil {
		return nil, err
	}

	metric, err := distance.Provider[float32](cfg.metric)
	if err != nil {
		return nil, err
	}

	ds := nnd.DenseDataset[float32]{Data: data, Metric: metric}
	driverCfg := toDriverConfig(cfg)

	prog := wrapProgress(cfg)

	var result *heap.Heap[float32]
	if cfg.nThreads > 1 {
		result, err = nnd.BuildParallel[float32](ctx, ds, driverCfg, prog)
	} else {
		result, err = nnd.Build[float32](ds, driverCfg, prog)
	}
	if err != nil {
		return nil, err
	}

	cfg.logger.LogSeed(ctx, len(data), cfg.k, seedStrategyName(cfg.seedStrategy))

	return graph.FromHeap(result), nil
}

// Query refines a candidate graph for queries against an already-built
// reference graph (spec §4.6, C6): for every query point it expands the
// reference graph's frontier from a random seed, keeping only improving
// edges. queries and reference must share dimensionality; ref must have
// been built over reference (or a superset sharing the same indexing).
func Query(ctx context.Context, queries, reference [][]float32, ref *graph.NNGraph[float32], k int, optFns ...Option) (*graph.NNGraph[float32], error) {
	cfg := applyOptions(append([]Option{WithK(k)}, optFns...))
	cfg.k = k

	if err := validateQuery(queries, reference, ref, cfg); err != nil {
		return nil, err
	}

	metric, err := distance.Provider[float32](cfg.metric)
	if err != nil {
		return nil, err
	}

	dist := func(q, r uint32) float32 {
		return metric(queries[q], reference[r])
	}

	refGraph := nnd.ReferenceGraph{Idx: ref.Idx, RefK: ref.K}
	driverCfg := toDriverConfig(cfg)
	prog := wrapProgress(cfg)

	result, err := nnd.Query[float32](ctx, refGraph, len(queries), dist, driverCfg, prog)
	if err != nil {
		return nil, err
	}

	cfg.logger.LogQuery(ctx, len(queries), cfg.k, nil)

	return graph.FromHeap(result), nil
}

func seedStrategyName(s SeedStrategy) string {
	if s == SeedFromGraph {
		return "from_graph"
	}
	return "random"
}

func wrapProgress(cfg config) Progress {
	if cfg.logger == nil {
		return cfg.progress
	}
	return NewLoggingProgress(cfg.logger, cfg.progress)
}

func toDriverConfig(cfg config) nnd.Config {
	return nnd.Config{
		K:             cfg.k,
		MaxCandidates: cfg.maxCandidates,
		NIters:        cfg.nIters,
		Delta:         cfg.delta,
		Rho:           cfg.rho,
		LowMemory:     cfg.lowMemory,
		NThreads:      cfg.nThreads,
		Seed:          cfg.seed,
		SeedIdx:       cfg.seedIdx,
		SeedDist:      cfg.seedDist,
		SeedNewFlag:   cfg.seedNewFlag,
	}
}
