package nnd

import (
	"github.com/hupe1980/nndescent/internal/candidate"
	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/internal/rng"
	"github.com/hupe1980/nndescent/internal/update"
	"github.com/hupe1980/nndescent/progress"
)

// Build runs the serial NND driver (spec §4.4): seed a random heap, then
// repeatedly build candidates, sample them at rate cfg.Rho, and join them
// into current until either the configured iteration cap is reached or the
// number of edge updates in an iteration drops to or below
// delta * k * n_points.
func Build[Out heap.Float](ds Dataset[Out], cfg Config, prog progress.Progress) (*heap.Heap[Out], error) {
	n := ds.NPoints()
	r := rng.New(cfg.Seed)
	current := seedInitial[Out](ds, cfg, r)

	var upd update.Updater[Out]
	if cfg.LowMemory {
		upd = update.Streaming[Out]{}
	} else {
		upd = update.Batched[Out]{}
	}

	threshold := cfg.Delta * float64(cfg.K) * float64(n)

	for iter := 1; iter <= cfg.NIters; iter++ {
		newC, oldC := candidate.Build(current, cfg.MaxCandidates, r)
		candidate.Sample(newC, cfg.Rho, r)
		candidate.Sample(oldC, cfg.Rho, r)

		c := upd.Generate(current, newC, oldC, ds.Dist)

		if float64(c) <= threshold {
			prog.Converged(iter, c, threshold)
			current.DeheapSort()
			return current, nil
		}

		prog.IterFinished(iter, cfg.NIters, c)
		if prog.CheckInterrupt() {
			current.DeheapSort()
			return current, nil
		}
	}

	current.DeheapSort()
	return current, nil
}
