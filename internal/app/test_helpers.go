package app

import (
	"bytes"
	"os"
	"sync"
	"testing"
	"time"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an App with debug logging captured in a buffer. The
// App's clock is pinned to at when at is non-zero. Set KISSCOAST_TEST_LOGS=true
// to print the captured log after the test.
func SetupAppTest(t *testing.T, cfg Config, at time.Time) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	testApp, err := NewApp(logBuffer, cfg)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	if !at.IsZero() {
		testApp.now = func() time.Time { return at }
	}

	t.Cleanup(func() {
		if os.Getenv("KISSCOAST_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
