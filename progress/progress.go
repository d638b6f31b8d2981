// Package progress implements the NND cooperative cancellation and
// reporting contract (spec §4.4, C8). Drivers in package nnd only depend on
// the Progress interface here, never on the root package, so this contract
// can be shared between the serial driver, the parallel driver, and query
// refinement without an import cycle back through the top-level API.
package progress

import "sync/atomic"

// Progress is polled by the NND drivers between blocks and between
// iterations, never mid-block.
type Progress interface {
	// IterFinished is called once per completed NND iteration, reporting the
	// 1-based iteration number, the configured cap, and the number of edge
	// updates applied during that iteration's local joins.
	IterFinished(iter, nIters, updates int)

	// Converged is called exactly once, instead of IterFinished, for the
	// iteration that satisfies the convergence threshold.
	Converged(iter, updates int, threshold float64)

	// CheckInterrupt is polled at every iteration boundary and, in the
	// parallel driver, at every block boundary. A true result unwinds the
	// driver: it deheap-sorts whatever has been accumulated and returns.
	CheckInterrupt() bool
}

// Noop implements Progress and never reports an interrupt. Use this when no
// progress reporting or cancellation is needed.
type Noop struct{}

func (Noop) IterFinished(int, int, int)  {}
func (Noop) Converged(int, int, float64) {}
func (Noop) CheckInterrupt() bool        { return false }

// Atomic provides simple in-memory, thread-safe progress counters plus an
// atomic cancellation flag a caller can set from another goroutine to
// interrupt a running build.
type Atomic struct {
	Iterations   atomic.Int64
	TotalUpdates atomic.Int64
	ConvergedAt  atomic.Int64 // iteration at which convergence fired, -1 if never
	interrupted  atomic.Bool
}

// NewAtomic returns an Atomic with ConvergedAt initialized to -1.
func NewAtomic() *Atomic {
	p := &Atomic{}
	p.ConvergedAt.Store(-1)
	return p
}

func (p *Atomic) IterFinished(iter, _, updates int) {
	p.Iterations.Store(int64(iter))
	p.TotalUpdates.Add(int64(updates))
}

func (p *Atomic) Converged(iter, updates int, _ float64) {
	p.Iterations.Store(int64(iter))
	p.TotalUpdates.Add(int64(updates))
	p.ConvergedAt.Store(int64(iter))
}

func (p *Atomic) CheckInterrupt() bool { return p.interrupted.Load() }

// Interrupt requests cancellation of the running build. Safe to call from
// any goroutine; takes effect at the next iteration or block boundary.
func (p *Atomic) Interrupt() { p.interrupted.Store(true) }
