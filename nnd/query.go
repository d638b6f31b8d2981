package nnd

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/internal/rng"
	"github.com/hupe1980/nndescent/internal/visited"
	"github.com/hupe1980/nndescent/progress"
	"github.com/hupe1980/nndescent/queue"
	"github.com/hupe1980/nndescent/seed"
)

// QueryDist evaluates the distance between a query point and a reference
// point. Query and reference live in disjoint index spaces: q indexes the
// query set, r indexes the reference set.
type QueryDist[Out heap.Float] func(q, r uint32) Out

// ReferenceGraph is the fixed graph query refinement expands across: row i
// lists (up to) RefK neighbor indices of reference point i, already
// deheap-sorted (order does not matter to Query, but a sorted reference
// graph is what Build produces).
type ReferenceGraph struct {
	Idx  []uint32 // row-major NRef x RefK
	RefK int
}

func (g ReferenceGraph) row(i uint32) []uint32 {
	start := int(i) * g.RefK
	return g.Idx[start : start+g.RefK]
}

// Query runs Query NND (spec §4.6): for every query point, seed a random
// candidate heap against the reference set, then repeatedly pop the
// closest not-yet-visited accepted reference point from a queue.PriorityQueue
// and expand it across the reference graph's edges, evaluating any
// not-yet-visited neighbor and keeping it only if it improves the query's
// heap. A per-query visited.VisitedSet (a dense bitset with a dirty list
// for O(touched) clearing) tracks visited reference indices so an
// already-expanded point is never re-evaluated, and the best-first order
// means the search spends its bounded expansion budget on the most
// promising directions first instead of visiting accepted points in
// arrival order.
//
// Queries are independent of one another (each owns its own heap row and
// visited set), so when cfg.NThreads > 1 they are split across a worker
// pool instead of the block/row-lock scheme BuildParallel needs for graph
// construction, where the same point can be touched by more than one
// worker.
func Query[Out heap.Float](ctx context.Context, ref ReferenceGraph, nQueries int, dist QueryDist[Out], cfg Config, prog progress.Progress) (*heap.Heap[Out], error) {
	nRef := len(ref.Idx) / ref.RefK
	result := heap.New[Out](nQueries, cfg.K, false)

	nThreads := cfg.NThreads
	if nThreads < 1 {
		nThreads = 1
	}

	sem := semaphore.NewWeighted(int64(nThreads))
	g, gctx := errgroup.WithContext(ctx)

	for q := 0; q < nQueries; q++ {
		q := q
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			r := rng.Split(cfg.Seed, q)
			queryOne(result, ref, nRef, q, dist, cfg, r)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.DeheapSort()
	prog.IterFinished(1, 1, nQueries)
	return result, nil
}

// queryOne refines a single query row in place via best-first expansion:
// a queue.PriorityQueue always expands the closest not-yet-visited
// reference point next, so the search explores promising directions before
// distant ones instead of expanding every accepted point in arrival order.
func queryOne[Out heap.Float](result *heap.Heap[Out], ref ReferenceGraph, nRef, q int, dist QueryDist[Out], cfg Config, r *rng.Rng) {
	seen := visited.New(nRef)
	frontier := &queue.PriorityQueue{}

	seedHeap := seed.Random[Out](nRef, 1, cfg.K, func(_, rp uint32) Out {
		return dist(uint32(q), rp)
	}, r, true)
	for j := 0; j < seedHeap.NNbrs(); j++ {
		n := seedHeap.Idx(0, j)
		if n == heap.NPos {
			continue
		}
		d := seedHeap.Dist(0, j)
		// Row q and column n index different sets, so CheckedPush's
		// self-edge rejection (n == q) must not apply here.
		if d < result.TopDistance(q) && !result.Contains(q, n) {
			result.PushUnchecked(q, d, n, true)
			seen.Visit(uint64(n))
			queue.Push(frontier, n, float32(d))
		}
	}

	// Bound total expansions by n_iters rounds worth of work, same budget
	// the round-based form used, so Query's cost stays predictable
	// regardless of how the frontier is ordered.
	maxExpansions := cfg.NIters * cfg.K
	if maxExpansions <= 0 {
		maxExpansions = cfg.K
	}

	for expansions := 0; expansions < maxExpansions && frontier.Len() > 0; expansions++ {
		p := queue.Pop(frontier).Node
		for _, n := range ref.row(p) {
			if n == heap.NPos || seen.Visited(uint64(n)) {
				continue
			}
			seen.Visit(uint64(n))
			d := dist(uint32(q), n)
			if d < result.TopDistance(q) && !result.Contains(q, n) {
				result.PushUnchecked(q, d, n, true)
				queue.Push(frontier, n, float32(d))
			}
		}
	}
}
