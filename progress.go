package nndescent

import (
	"context"

	"github.com/hupe1980/nndescent/progress"
)

// Progress, NoopProgress, and AtomicProgress re-export package progress's
// contract at the root so callers configuring a Build/Query via
// WithProgress don't need a second import for the common cases.
type (
	Progress       = progress.Progress
	NoopProgress   = progress.Noop
	AtomicProgress = progress.Atomic
)

// NewAtomicProgress re-exports progress.NewAtomic.
func NewAtomicProgress() *AtomicProgress { return progress.NewAtomic() }

// LoggingProgress wraps a *Logger and logs each iteration and convergence,
// while delegating CheckInterrupt to an embedded Progress (NoopProgress by
// default). Interrupts are passed through without being logged. It lives at the root, not in package progress,
// because it depends on this package's *Logger.
type LoggingProgress struct {
	Progress
	Logger *Logger
}

// NewLoggingProgress returns a LoggingProgress that never interrupts on its
// own; pass a non-nil inner to layer logging over another Progress (e.g. an
// *AtomicProgress used for cancellation).
func NewLoggingProgress(logger *Logger, inner Progress) *LoggingProgress {
	if inner == nil {
		inner = NoopProgress{}
	}
	return &LoggingProgress{Progress: inner, Logger: logger}
}

func (p *LoggingProgress) IterFinished(iter, nIters, updates int) {
	p.Logger.LogIteration(context.Background(), iter, nIters, updates, 0)
	p.Progress.IterFinished(iter, nIters, updates)
}

func (p *LoggingProgress) Converged(iter, updates int, threshold float64) {
	p.Logger.LogConverged(context.Background(), iter, updates, threshold)
	p.Progress.Converged(iter, updates, threshold)
}
