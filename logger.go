package nndescent

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with nndescent-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a copy of the logger; no values are taken from ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return &Logger{
		Logger: l.Logger.With(),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithMetric adds the distance metric name to the logger.
func (l *Logger) WithMetric(metric string) *Logger {
	return &Logger{
		Logger: l.Logger.With("metric", metric),
	}
}

// WithIteration adds the current NND iteration number to the logger.
func (l *Logger) WithIteration(iter int) *Logger {
	return &Logger{
		Logger: l.Logger.With("iteration", iter),
	}
}

// LogIteration logs the end of one NND iteration: the iteration number, the
// iteration cap, the number of edge updates applied during the local joins,
// and the convergence threshold.
func (l *Logger) LogIteration(ctx context.Context, iter, nIters, updates int, threshold float64) {
	l.DebugContext(ctx, "nnd iteration completed",
		"iteration", iter,
		"n_iters", nIters,
		"updates", updates,
		"threshold", threshold,
	)
}

// LogConverged logs that NND stopped because the update count fell at or
// below the convergence threshold.
func (l *Logger) LogConverged(ctx context.Context, iter, updates int, threshold float64) {
	l.InfoContext(ctx, "nnd converged",
		"iteration", iter,
		"updates", updates,
		"threshold", threshold,
	)
}

// LogMaxIters logs that NND stopped because it reached its iteration cap
// without converging.
func (l *Logger) LogMaxIters(ctx context.Context, nIters int) {
	l.InfoContext(ctx, "nnd reached iteration cap",
		"n_iters", nIters,
	)
}

// LogInterrupted logs that NND unwound early due to a cooperative
// cancellation request from the progress collaborator.
func (l *Logger) LogInterrupted(ctx context.Context, iter int) {
	l.InfoContext(ctx, "nnd interrupted",
		"iteration", iter,
	)
}

// LogSeed logs the completion of the initial-heap seeding pass.
func (l *Logger) LogSeed(ctx context.Context, nPoints, k int, strategy string) {
	l.DebugContext(ctx, "seed completed",
		"n_points", nPoints,
		"k", k,
		"strategy", strategy,
	)
}

// LogQuery logs the completion of a query-NND refinement pass.
func (l *Logger) LogQuery(ctx context.Context, nQueries, k int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query nnd failed",
			"n_queries", nQueries,
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query nnd completed",
			"n_queries", nQueries,
			"k", k,
		)
	}
}
