package candidate

import (
	"github.com/hupe1980/nndescent/internal/heap"
	"github.com/hupe1980/nndescent/internal/rng"
)

// Sample discards a (1 - rho) fraction of c's occupied slots in place,
// clearing them back to sentinel. This is the serial driver's rho-sampling
// pass (spec §4.4: "rho — candidate sampling rate ... applies only to the
// serial driver"); the parallel driver always evaluates every candidate in
// a block and never calls Sample. rho >= 1.0 is a no-op.
func Sample(c *heap.Heap[float32], rho float64, r rng.Source) {
	if rho >= 1.0 {
		return
	}
	n, k := c.NPoints(), c.NNbrs()
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			if c.Idx(i, j) == heap.NPos {
				continue
			}
			if r.Float64() >= rho {
				c.Clear(i, j)
			}
		}
	}
}
