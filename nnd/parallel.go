package nnd

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/nndescent/internal/candidate"
	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/internal/rng"
	"github.com/hupe1980/nndescent/progress"
)

// BuildParallel runs the parallel NND driver (spec §4.5): each iteration's
// candidate join is split into cfg.NThreads point-index blocks evaluated
// concurrently, guarded by a striped row-lock bank (heap.RowLocks) so two
// workers joining a shared point never race on its row. Unlike the serial
// driver, rho-sampling is not applied — every candidate in a block is
// always evaluated, matching original_source/'s parallel build, which only
// exposes sampling on the serial path.
//
// ctx cancellation stops the run between blocks (the block-level
// errgroup honors it on the next Wait); prog.CheckInterrupt is polled
// before each block is dispatched and again between iterations.
func BuildParallel[Out heap.Float](ctx context.Context, ds Dataset[Out], cfg Config, prog progress.Progress) (*heap.Heap[Out], error) {
	n := ds.NPoints()
	root := rng.New(cfg.Seed)
	current := seedInitial[Out](ds, cfg, root)

	locks := heap.NewRowLocks(n)
	threshold := cfg.Delta * float64(cfg.K) * float64(n)

	nThreads := cfg.NThreads
	if nThreads < 1 {
		nThreads = 1
	}

	for iter := 1; iter <= cfg.NIters; iter++ {
		// Candidate-priority sampling happens serially, on the root stream,
		// before any worker is spawned — it fills the scratch candidate heaps
		// and clears current's flags while no worker is running, so it is
		// race-free by construction.
		newC, oldC := candidate.Build(current, cfg.MaxCandidates, root)

		blockSize := (n + nThreads - 1) / nThreads
		sem := semaphore.NewWeighted(int64(nThreads))
		g, gctx := errgroup.WithContext(ctx)
		var total atomic.Int64
		var acquireErr error
		interrupted := false

		for w := 0; w < nThreads; w++ {
			w := w
			start := w * blockSize
			end := start + blockSize
			if start >= n {
				break
			}
			if end > n {
				end = n
			}

			if prog.CheckInterrupt() {
				interrupted = true
				break
			}
			if err := sem.Acquire(gctx, 1); err != nil {
				acquireErr = err
				break
			}
			g.Go(func() error {
				defer sem.Release(1)
				// Each worker owns a derived stream (spec §9 "Global RNG
				// state"); nothing in this block currently draws from it,
				// but it is wired through so future per-worker randomness
				// (e.g. tie-breaking) has a deterministic source to use.
				_ = rng.Split(cfg.Seed, w)
				c := joinBlockLocked(current, newC, oldC, ds.Dist, locks, start, end)
				total.Add(int64(c))
				return gctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			current.DeheapSort()
			return current, err
		}
		if acquireErr != nil {
			current.DeheapSort()
			return current, acquireErr
		}
		if interrupted {
			current.DeheapSort()
			return current, nil
		}

		c := int(total.Load())
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

// joinBlockLocked is update.Streaming.Generate specialized to a
// [start, end) slice of point-owned rows and guarded by locks, so it can
// run concurrently with other blocks over the same current heap.
func joinBlockLocked[Out heap.Float](current *heap.Heap[Out], newC, oldC *heap.Heap[float32], dist DistFunc[Out], locks *heap.RowLocks, start, end int) int {
	c := 0
	for i := start; i < end; i++ {
		newIdxs := candidate.RowIndices(newC, i)
		oldIdxs := candidate.RowIndices(oldC, i)

		for a := 0; a < len(newIdxs); a++ {
			p := newIdxs[a]
			for b := a + 1; b < len(newIdxs); b++ {
				q := newIdxs[b]
				if p == q {
					continue
				}
				d := dist(p, q)
				locks.LockPair(int(p), q)
				c += current.CheckedPushPair(int(p), q, d, true)
				locks.UnlockPair(int(p), q)
			}
			for _, q := range oldIdxs {
				if p == q {
					continue
				}
				d := dist(p, q)
				locks.LockPair(int(p), q)
				c += current.CheckedPushPair(int(p), q, d, true)
				locks.UnlockPair(int(p), q)
			}
		}
	}
	return c
}
