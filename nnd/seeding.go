package nnd

import (
	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/internal/rng"
	"github.com/hupe1980/nndescent/seed"
)

// seedInitial builds the heap a driver run starts from: a fresh random
// heap (the default), or an imported one when cfg carries a SeedFromGraph
// pair (see Config.SeedIdx/SeedDist).
func seedInitial[Out heap.Float](ds Dataset[Out], cfg Config, r rng.Source) *heap.Heap[Out] {
	n := ds.NPoints()
	if cfg.SeedIdx != nil && cfg.SeedDist != nil {
		dist := make([]Out, len(cfg.SeedDist))
		for i, v := range cfg.SeedDist {
			dist[i] = Out(v)
		}
		return seed.FromGraph[Out](n, cfg.K, cfg.SeedIdx, dist, cfg.SeedNewFlag)
	}
	return seed.Random[Out](n, n, cfg.K, ds.Dist, r, false)
}
