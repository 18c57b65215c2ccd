// Package bhtsne wraps the pre-compiled bh_tsne engine to embed
// high-dimensional float vectors into a low-dimensional space for
// visualization.
//
// The pipeline is: center and PCA-reduce the input, hand the reduced
// matrix to the engine through a binary file protocol in a scoped temp
// directory, then decode the engine's unordered output and restore the
// original input order via landmark indices.
//
// # Quick Start
//
//	ctx := context.Background()
//	t, err := bhtsne.New(
//	    bhtsne.WithPerplexity(30),
//	    bhtsne.WithOutputDims(2),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for point, err := range t.Embed(ctx, vectors) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(point)
//	}
//
// The result stream is single-pass and lazy: no work happens until the
// first iteration, and a finished or aborted stream cannot be resumed.
// Re-embedding requires a fresh Embed call, which is a fresh pipeline
// run.
//
// The engine executable is resolved at construction time, by default
// next to the running binary. A missing engine is reported by New,
// before any temp resources are created.
package bhtsne
