package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBinaryRunnerMissingBinary(t *testing.T) {
	_, err := NewBinaryRunner(filepath.Join(t.TempDir(), "no-such-binary"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewBinaryRunnerRejectsDirectory(t *testing.T) {
	_, err := NewBinaryRunner(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExitErrorMentionsVerbose(t *testing.T) {
	err := &ExitError{Path: "/opt/bh_tsne", ExitCode: 2}
	assert.Contains(t, err.Error(), "verbose")
	assert.Contains(t, err.Error(), "status 2")
}

func TestDefaultPathUsesBinaryName(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), BinaryName))
}

// writeScript drops an executable shell script posing as the engine.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), BinaryName)
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestRunSuccess(t *testing.T) {
	workdir := t.TempDir()
	path := writeScript(t, "touch ran.txt")

	runner, err := NewBinaryRunner(path)
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background(), workdir, false))

	// The engine runs with the working directory as its cwd.
	_, err = os.Stat(filepath.Join(workdir, "ran.txt"))
	assert.NoError(t, err)
}

func TestRunNonZeroExit(t *testing.T) {
	path := writeScript(t, "exit 3")

	runner, err := NewBinaryRunner(path)
	require.NoError(t, err)

	err = runner.Run(context.Background(), t.TempDir(), false)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.Contains(t, err.Error(), "verbose")
}

func TestRunVerboseRedirectsStdout(t *testing.T) {
	path := writeScript(t, "echo engine-noise")

	runner, err := NewBinaryRunner(path)
	require.NoError(t, err)

	var stderr strings.Builder
	runner.Stderr = &stderr

	require.NoError(t, runner.Run(context.Background(), t.TempDir(), true))
	assert.Contains(t, stderr.String(), "engine-noise")

	stderr.Reset()
	require.NoError(t, runner.Run(context.Background(), t.TempDir(), false))
	assert.Empty(t, stderr.String())
}
