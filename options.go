package nndescent

import (
	"log/slog"

	"github.com/hupe1980/nndescent/distance"
)

// config holds an NND run's tunables (spec §4.4 Parameters). Defaults are
// set by applyOptions and mirror the reference implementation's.
type config struct {
	k             int
	maxCandidates int
	nIters        int
	delta         float64
	rho           float64
	lowMemory     bool
	nThreads      int
	metric        distance.Metric
	seedStrategy  SeedStrategy
	seed          int64
	seedIdx       []uint32
	seedDist      []float64
	seedNewFlag   bool
	logger        *Logger
	progress      Progress
}

// SeedStrategy selects how the initial heap is built before NND refines it.
type SeedStrategy int

const (
	// SeedRandom draws k distinct candidates per point uniformly at random
	// (the default — see seed.Random).
	SeedRandom SeedStrategy = iota
	// SeedFromGraph imports a caller-supplied (idx, dist) pair directly
	// (see seed.FromGraph); set via WithSeedGraph.
	SeedFromGraph
)

// Option configures a Build or Query call.
//
// Breaking changes are expected while this module is pre-release.
type Option func(*config)

// WithK sets the number of neighbors to find per point. Required to be
// positive and, for Build, no larger than n_points-1 (spec §7.1). Build and
// Query set k from their own k argument, which takes precedence over this
// option.
func WithK(k int) Option {
	return func(c *config) { c.k = k }
}

// WithMaxCandidates sets the per-iteration candidate heap capacity (spec
// §4.2). Larger values trade memory and iteration cost for faster
// convergence. Defaults to min(k, 60) when unset or non-positive.
func WithMaxCandidates(maxCandidates int) Option {
	return func(c *config) { c.maxCandidates = maxCandidates }
}

// WithNIters bounds the number of refinement iterations (spec §4.4). NND
// may converge and stop earlier; it never runs longer. Defaults to 2*k.
func WithNIters(nIters int) Option {
	return func(c *config) { c.nIters = nIters }
}

// WithDelta sets the convergence threshold as a fraction of k*n_points
// updates per iteration (spec §4.4's delta*k*n_points gate). Defaults to
// 0.001.
func WithDelta(delta float64) Option {
	return func(c *config) { c.delta = delta }
}

// WithRho sets the candidate sampling rate used by the serial driver (spec
// §4.4; not applied by the parallel driver, which always evaluates the
// full candidate set per block). Defaults to 1.0 (no sampling).
func WithRho(rho float64) Option {
	return func(c *config) { c.rho = rho }
}

// WithLowMemory selects the streaming graph updater over the batched one
// (spec §4.3). Defaults to true.
func WithLowMemory(lowMemory bool) Option {
	return func(c *config) { c.lowMemory = lowMemory }
}

// WithNThreads selects the parallel driver with the given worker count.
// n_threads <= 1 (the default) runs the serial driver.
func WithNThreads(n int) Option {
	return func(c *config) { c.nThreads = n }
}

// WithMetric selects the distance kernel (spec §6). Defaults to
// distance.L2Sqr.
func WithMetric(m distance.Metric) Option {
	return func(c *config) { c.metric = m }
}

// WithSeed sets the root seed for every pseudo-random stream this run
// derives (initial heap construction, candidate-priority sampling,
// per-worker RNG splitting). Serial runs with the same seed and data are
// reproducible (spec §9 "Global RNG state"); the parallel driver applies
// concurrent blocks' updates in scheduling order, so its results can vary
// between runs.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithSeedGraph switches the seeding strategy from SeedRandom to
// SeedFromGraph: idx and dist (each row-major n_points*k) are imported
// directly as the initial heap instead of drawing random candidates (spec
// §9, seed.FromGraph). newFlag controls whether NND re-examines every
// imported edge on its first iteration.
func WithSeedGraph(idx []uint32, dist []float64, newFlag bool) Option {
	return func(c *config) {
		c.seedStrategy = SeedFromGraph
		c.seedIdx = idx
		c.seedDist = dist
		c.seedNewFlag = newFlag
	}
}

// WithLogger configures structured logging for the run. Pass nil to
// disable logging.
func WithLogger(logger *Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithLogLevel creates a text logger at the given level and sets it.
func WithLogLevel(level slog.Level) Option {
	return func(c *config) { c.logger = NewTextLogger(level) }
}

// WithProgress configures the Progress implementation a run reports
// iteration counts, convergence, and interrupt checks through (spec §4.4,
// C8). Pass nil to disable (equivalent to NoopProgress{}).
func WithProgress(p Progress) Option {
	return func(c *config) { c.progress = p }
}

func applyOptions(optFns []Option) config {
	c := config{
		k:             0,
		maxCandidates: 0,
		nIters:        0,
		delta:         0.001,
		rho:           1.0,
		lowMemory:     true,
		nThreads:      1,
		metric:        distance.L2Sqr,
		seed:          1,
		logger:        NoopLogger(),
		progress:      NoopProgress{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&c)
		}
	}
	if c.maxCandidates <= 0 {
		c.maxCandidates = c.k
		if c.maxCandidates > 60 {
			c.maxCandidates = 60
		}
	}
	if c.nIters <= 0 {
		c.nIters = 2 * c.k
	}
	if c.logger == nil {
		c.logger = NoopLogger()
	}
	if c.progress == nil {
		c.progress = NoopProgress{}
	}
	return c
}
