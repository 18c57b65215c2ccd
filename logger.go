package bhtsne

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pipeline-specific context.
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

// WithSamples adds sample count and dimension fields to the logger.
func (l *Logger) WithSamples(count, dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("samples", count, "dimension", dim),
	}
}

// LogReduce logs the PCA preprocessing step.
func (l *Logger) LogReduce(ctx context.Context, fromDims, toDims int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "pca reduction failed",
			"from_dims", fromDims,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "pca reduction completed",
			"from_dims", fromDims,
			"to_dims", toDims,
		)
	}
}

// LogEncode logs the protocol encode step.
func (l *Logger) LogEncode(ctx context.Context, workdir string, samples int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"workdir", workdir,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "input encoded",
			"workdir", workdir,
			"samples", samples,
		)
	}
}

// LogEngineRun logs the external engine invocation.
func (l *Logger) LogEngineRun(ctx context.Context, workdir string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "engine run failed",
			"workdir", workdir,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "engine run completed",
			"workdir", workdir,
		)
	}
}

// LogDecode logs the result decode and reorder step.
func (l *Logger) LogDecode(ctx context.Context, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "decode failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "results decoded",
			"results", results,
		)
	}
}
