package bhtsne

import (
	"bufio"
	"context"
	"fmt"
	"iter"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/embedviz/bhtsne/engine"
	"github.com/embedviz/bhtsne/internal/fs"
	"github.com/embedviz/bhtsne/pca"
	"github.com/embedviz/bhtsne/protocol"
)

// TSNE drives the embedding pipeline: PCA preprocessing, binary encode,
// external engine run, decode and landmark reorder.
//
// A TSNE value is cheap and reusable; every Embed call is an
// independent pipeline run with its own scoped working directory.
type TSNE struct {
	opts   options
	runner engine.Runner
}

// New creates a pipeline. The engine executable is resolved here so a
// missing binary surfaces before any temp resources are created.
func New(opts ...Option) (*TSNE, error) {
	o := options{
		theta:       DefaultTheta,
		perplexity:  DefaultPerplexity,
		initialDims: DefaultInitialDims,
		outputDims:  DefaultOutputDims,
		logger:      NoopLogger(),
		fs:          fs.Default,
	}
	for _, fn := range opts {
		fn(&o)
	}

	if o.theta < 0 {
		return nil, fmt.Errorf("theta must be >= 0, got %g", o.theta)
	}
	if o.perplexity <= 0 {
		return nil, fmt.Errorf("perplexity must be > 0, got %g", o.perplexity)
	}
	if o.initialDims < 1 {
		return nil, fmt.Errorf("initial dims must be positive, got %d", o.initialDims)
	}
	if o.outputDims < 1 {
		return nil, fmt.Errorf("output dims must be positive, got %d", o.outputDims)
	}

	runner := o.runner
	if runner == nil {
		path := o.enginePath
		if path == "" {
			var err error
			if path, err = engine.DefaultPath(); err != nil {
				return nil, err
			}
		}
		var err error
		if runner, err = engine.NewBinaryRunner(path); err != nil {
			return nil, err
		}
	}

	return &TSNE{opts: o, runner: runner}, nil
}

// Embed runs the pipeline over the sample matrix and returns a lazy,
// single-pass stream of embedded points in original input order, one
// per input sample.
//
// No work happens until the first iteration. The stream is not
// resumable: breaking out of the loop discards the remainder, and a
// fresh Embed call starts a fresh pipeline run. On failure the stream
// yields exactly one non-nil error and no partial results.
//
// Example:
//
//	for point, err := range t.Embed(ctx, vectors) {
//	    if err != nil {
//	        return err
//	    }
//	    process(point)
//	}
func (t *TSNE) Embed(ctx context.Context, samples [][]float64) iter.Seq2[[]float64, error] {
	return func(yield func([]float64, error) bool) {
		results, err := t.run(ctx, samples)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, point := range results {
			if !yield(point, nil) {
				return
			}
		}
	}
}

// EmbedAll runs the pipeline and collects the full embedding.
func (t *TSNE) EmbedAll(ctx context.Context, samples [][]float64) ([][]float64, error) {
	return t.run(ctx, samples)
}

// run executes one synchronous pipeline pass. The working directory is
// removed on every exit path before control returns.
func (t *TSNE) run(ctx context.Context, samples [][]float64) ([][]float64, error) {
	n, d, err := validate(samples)
	if err != nil {
		return nil, err
	}
	logger := t.opts.logger.WithSamples(n, d)

	flat := make([]float64, 0, n*d)
	for _, row := range samples {
		flat = append(flat, row...)
	}
	reduced, err := pca.Reduce(mat.NewDense(n, d, flat), t.opts.initialDims)
	logger.LogReduce(ctx, d, t.opts.initialDims, err)
	if err != nil {
		return nil, err
	}

	workdir, err := t.opts.fs.MkdirTemp("", "bhtsne-*")
	if err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}
	defer func() {
		// Unconditional: the directory must not outlive this run,
		// fatal paths included.
		_ = t.opts.fs.RemoveAll(workdir)
	}()

	err = t.encode(workdir, reduced)
	logger.LogEncode(ctx, workdir, n, err)
	if err != nil {
		return nil, err
	}

	err = t.runner.Run(ctx, workdir, t.opts.verbose)
	logger.LogEngineRun(ctx, workdir, err)
	if err != nil {
		return nil, err
	}

	results, err := t.decode(workdir, n)
	logger.LogDecode(ctx, len(results), err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// encode writes the engine's input file into the working directory.
func (t *TSNE) encode(workdir string, x *mat.Dense) error {
	f, err := t.opts.fs.Create(filepath.Join(workdir, protocol.DataFile))
	if err != nil {
		return fmt.Errorf("create %s: %w", protocol.DataFile, err)
	}
	defer f.Close()

	n, dim := x.Dims()
	buf := bufio.NewWriter(f)
	pw := protocol.NewWriter(buf)

	if err := pw.WriteHeader(protocol.Header{
		SampleCount: int32(n),
		SampleDim:   int32(dim),
		Theta:       t.opts.theta,
		Perplexity:  t.opts.perplexity,
		OutputDims:  int32(t.opts.outputDims),
	}); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := pw.WriteSample(x.RawRowView(i)); err != nil {
			return err
		}
	}
	if t.opts.hasSeed {
		if err := pw.WriteSeed(t.opts.seed); err != nil {
			return err
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", protocol.DataFile, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", protocol.DataFile, err)
	}
	return f.Close()
}

// decode reads the engine's output file and restores input order.
func (t *TSNE) decode(workdir string, wantCount int) ([][]float64, error) {
	f, err := t.opts.fs.Open(filepath.Join(workdir, protocol.ResultFile))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", protocol.ResultFile, err)
	}
	defer f.Close()

	return protocol.DecodeResult(bufio.NewReader(f), wantCount)
}
