package bhtsne

import (
	"github.com/embedviz/bhtsne/engine"
	"github.com/embedviz/bhtsne/internal/fs"
)

// Defaults mirror the reference bh_tsne wrapper.
const (
	// DefaultOutputDims is the dimensionality of the embedding.
	DefaultOutputDims = 2

	// DefaultInitialDims is the PCA target dimensionality applied
	// before the nonlinear embedding.
	DefaultInitialDims = 50

	// DefaultPerplexity controls the effective neighborhood size.
	DefaultPerplexity = 50

	// DefaultTheta is the engine's approximation threshold.
	// 0 requests exact (slower) computation.
	DefaultTheta = 0.5
)

type options struct {
	enginePath  string
	runner      engine.Runner
	theta       float64
	perplexity  float64
	initialDims int
	outputDims  int
	seed        int32
	hasSeed     bool
	verbose     bool
	logger      *Logger
	fs          fs.FileSystem
}

// Option configures pipeline construction.
type Option func(*options)

// WithEnginePath overrides the engine executable location. By default
// the engine is expected next to the running binary.
func WithEnginePath(path string) Option {
	return func(o *options) {
		o.enginePath = path
	}
}

// WithRunner replaces the engine invocation entirely. Intended for
// tests that substitute a stub engine; WithEnginePath is ignored when
// a runner is set.
func WithRunner(r engine.Runner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithTheta sets the approximation/exactness trade-off. Must be >= 0;
// 0 requests exact computation.
func WithTheta(theta float64) Option {
	return func(o *options) {
		o.theta = theta
	}
}

// WithPerplexity sets the effective neighborhood size. Must be > 0.
func WithPerplexity(perplexity float64) Option {
	return func(o *options) {
		o.perplexity = perplexity
	}
}

// WithInitialDims sets the PCA target dimensionality. Values larger
// than the input dimensionality clamp silently.
func WithInitialDims(dims int) Option {
	return func(o *options) {
		o.initialDims = dims
	}
}

// WithOutputDims sets the embedding dimensionality.
func WithOutputDims(dims int) Option {
	return func(o *options) {
		o.outputDims = dims
	}
}

// WithRandomSeed fixes the engine's random seed for reproducible
// embeddings. Without this option no seed record is written and the
// engine seeds itself.
func WithRandomSeed(seed int32) Option {
	return func(o *options) {
		o.seed = seed
		o.hasSeed = true
	}
}

// WithVerbose redirects the engine's diagnostic output to stderr
// instead of discarding it.
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		o.verbose = verbose
	}
}

// WithLogger sets the pipeline logger. Defaults to a noop logger.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithFS replaces the file system used for the scoped working
// directory. Intended for tests.
func WithFS(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fs = fsys
	}
}
