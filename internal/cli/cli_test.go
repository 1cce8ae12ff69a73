package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/kisscoast/internal/app"
	"github.com/specialistvlad/kisscoast/internal/artifact"
	"github.com/specialistvlad/kisscoast/internal/executor"
)

const destring = "; 'Destring/Wipe/Jump Path', 0.0 [feed mm/s], 150.0 [head mm/s]"

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func program() string {
	return strings.Join([]string{";", "G1 X0 Y0 E0", "G1 X10 Y0 E1", destring, ";"}, "\r\n") + "\r\n"
}

// execute runs the command tree with quiet json logs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	logs := &app.SafeBuffer{}
	err := Execute(context.Background(), append([]string{"--log-format", "json"}, args...), out, logs)
	if os.Getenv("KISSCOAST_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}
	return out.String(), err
}

func exitCodeOf(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T: %v", err, err)
	return exitErr.Code
}

func TestExecute_NoArgsPrintsHelp(t *testing.T) {
	t.Parallel()

	out, err := execute(t)

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "kisscoast [flags] FILE|DIR")
}

func TestExecute_UsageErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"--this-is-not-a-valid-flag"}, wantMsg: "unknown flag: --this-is-not-a-valid-flag"},
		{name: "non-numeric coast", args: []string{"--coast", "abc", "x.gcode"}, wantMsg: `invalid argument "abc"`},
		{name: "too many args", args: []string{"a.gcode", "b.gcode"}, wantMsg: "accepts at most 1 arg(s)"},
		{name: "watch without dir", args: []string{"watch"}, wantMsg: "accepts 1 arg(s)"},
		{name: "coast out of range", args: []string{"--coast", "150", "x.gcode"}, wantMsg: "coast must be at most 100"},
		{name: "workers out of range", args: []string{"--workers", "0", "x.gcode"}, wantMsg: "workers must be at least 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, tc.args...)

			require.Error(t, err)
			assert.Equal(t, ExitUsage, exitCodeOf(t, err))
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestExecute_InputNotFound(t *testing.T) {
	t.Parallel()

	_, err := execute(t, filepath.Join(t.TempDir(), "missing.gcode"))

	require.Error(t, err)
	assert.Equal(t, ExitInputNotFound, exitCodeOf(t, err))
}

func TestExecute_ProcessesFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	input := writeFile(t, t.TempDir(), "part.gcode", program())

	// --- Act ---
	out, err := execute(t, "--coast", "5", "--backup", input)

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("%s -> %s: regular 1 coasted, 0 skipped", input, input+app.OutputSuffix))
	assert.FileExists(t, input+app.BackupSuffix)

	data, err := os.ReadFile(input + app.OutputSuffix)
	require.NoError(t, err)
	assert.Contains(t, string(data), "G1 X5.0000 Y0.0000 E0.5000 ; Calculated endpoint of extrusion\r\n")

	_, err = execute(t, "--overwrite", input+app.OutputSuffix)
	require.Error(t, err)
	assert.Equal(t, ExitAlreadyCoasted, exitCodeOf(t, err))
}

func TestExecute_FlagsOverrideConfigFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "kisscoast.hcl", `
coast {
  distance              = 2
  prime_pillar_distance = 0.25
}
workers = 2
`)
	input := writeFile(t, dir, "part.gcode", program())

	// --- Act ---
	_, err := execute(t, "--config", cfgPath, "--coast", "5", input)

	// --- Assert ---
	require.NoError(t, err)
	data, err := os.ReadFile(input + app.OutputSuffix)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, ";              coast: 5\r\n", "flag beats file")
	assert.Contains(t, text, ";   primePillarCoast: 0.25\r\n", "file beats default")
	assert.Contains(t, text, ";            workers: 2\r\n")
}

func TestExecute_BadConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "kisscoast.yaml", "coast:\n  distance: 500\n")
	input := writeFile(t, dir, "part.gcode", program())

	_, err := execute(t, "-c", cfgPath, input)

	require.Error(t, err)
	assert.Equal(t, ExitUsage, exitCodeOf(t, err))
	assert.Contains(t, err.Error(), "coast must be at most 100, got 500")
}

func TestExecute_MissingConfigFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "-c", filepath.Join(t.TempDir(), "none.hcl"), "x.gcode")

	require.Error(t, err)
	assert.Equal(t, ExitUsage, exitCodeOf(t, err))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("wrapped: %w", app.ErrConfig), want: ExitUsage},
		{err: fmt.Errorf("wrapped: %w", app.ErrInputNotFound), want: ExitInputNotFound},
		{err: fmt.Errorf("wrapped: %w", app.ErrAlreadyCoasted), want: ExitAlreadyCoasted},
		{err: fmt.Errorf("wrapped: %w", artifact.ErrScratchArea), want: ExitScratchArea},
		{err: fmt.Errorf("%w: chunk 2: %w", executor.ErrWorkerFailure, artifact.ErrNotFound), want: ExitWorkerFailure},
		{err: errors.New("boom"), want: ExitFailure},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, exitCode(tc.err), tc.err.Error())
	}
	assert.Nil(t, toExitError(nil))

	preset := &ExitError{Code: 9, Message: "preset"}
	assert.Same(t, preset, toExitError(fmt.Errorf("outer: %w", preset)))
}
