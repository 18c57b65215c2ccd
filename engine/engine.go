// Package engine launches the external bh_tsne executable that performs
// the nonlinear embedding. The engine is an opaque collaborator: it is
// invoked with no arguments, finds its input file by convention in its
// working directory, and leaves its output file there. Only the exit
// status is interpreted.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// BinaryName is the engine executable's conventional name.
const BinaryName = "bh_tsne"

// ErrNotFound is returned when the engine executable cannot be located.
var ErrNotFound = errors.New("bh_tsne binary not found")

// Runner executes the embedding engine against a prepared working
// directory and blocks until it terminates. Implementations must not
// retry and must not produce partial results on failure.
type Runner interface {
	Run(ctx context.Context, workdir string, verbose bool) error
}

// ExitError indicates the engine terminated with a non-zero exit
// status. The engine's internal failure is not interpreted; the message
// points at verbose mode for diagnostics.
//
// The original underlying error can be accessed via errors.Unwrap.
type ExitError struct {
	Path     string
	ExitCode int
	cause    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("bh_tsne exited with status %d (path %s): enable verbose mode and refer to the engine output for further details", e.ExitCode, e.Path)
}

func (e *ExitError) Unwrap() error { return e.cause }

// BinaryRunner runs a bh_tsne executable at a fixed path.
type BinaryRunner struct {
	// Path is the absolute path of the engine executable.
	Path string

	// Stderr receives the engine's diagnostic output in verbose mode.
	// Defaults to os.Stderr.
	Stderr io.Writer
}

// NewBinaryRunner validates that an engine executable exists at path
// and returns a runner for it. The check happens here so a missing
// binary surfaces before any temp resources are created.
func NewBinaryRunner(path string) (*BinaryRunner, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve engine path: %w", err)
	}
	return &BinaryRunner{Path: abs}, nil
}

// DefaultPath returns the conventional engine location: next to the
// running executable, named bh_tsne (bh_tsne.exe on Windows).
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate own executable: %w", err)
	}
	name := BinaryName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(exe), name), nil
}

// Run launches the engine with workdir as its current directory and
// blocks until it exits. The engine is very noisy on stdout and is
// diagnostic-only there: verbose redirects it to stderr, otherwise it
// is discarded. No timeout is enforced; a hung engine hangs the call.
func (r *BinaryRunner) Run(ctx context.Context, workdir string, verbose bool) error {
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cmd := exec.CommandContext(ctx, r.Path)
	cmd.Dir = workdir
	cmd.Stderr = stderr
	if verbose {
		cmd.Stdout = stderr
	} else {
		cmd.Stdout = io.Discard
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Path: r.Path, ExitCode: exitErr.ExitCode(), cause: err}
		}
		return fmt.Errorf("run %s: %w", r.Path, err)
	}
	return nil
}
