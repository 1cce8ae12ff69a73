package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Watch_ProcessesNewPrograms(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := DefaultConfig()
	cfg.WatchDebounce = 50 * time.Millisecond
	cfg.MetricsFile = filepath.Join(t.TempDir(), "kisscoast.prom")
	a, logs := SetupAppTest(t, cfg, time.Time{})
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx, dir) }()
	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Watching for programs.")
	}, 5*time.Second, 10*time.Millisecond)

	// --- Act ---
	input := writeProgram(t, dir, "part.gcode", straightPath()...)
	writeProgram(t, dir, "notes.txt", "ignored")

	// --- Assert ---
	require.Eventually(t, func() bool {
		_, err := os.Stat(input + OutputSuffix)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	assert.NoFileExists(t, filepath.Join(dir, "notes.txt"+OutputSuffix))
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(cfg.MetricsFile)
		return err == nil && strings.Contains(string(data), "kisscoast_programs{")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}

func TestApp_Watch_MissingDir(t *testing.T) {
	t.Parallel()
	a, _ := SetupAppTest(t, DefaultConfig(), pinned)

	err := a.Watch(context.Background(), filepath.Join(t.TempDir(), "nope"))

	require.ErrorIs(t, err, ErrInputNotFound)
}
