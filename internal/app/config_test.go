package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/kisscoast/internal/coast"
	"github.com/specialistvlad/kisscoast/internal/config"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "bounds", mutate: func(c *Config) {
			c.CoastDistance, c.PrimePillarCoastDistance, c.WorkerCount = 100, 0, 128
		}},
		{name: "coast too large", mutate: func(c *Config) { c.CoastDistance = 100.5 }, wantErr: "coast must be at most 100, got 100.5"},
		{name: "negative prime coast", mutate: func(c *Config) { c.PrimePillarCoastDistance = -1 }, wantErr: "prime-pillar-coast must be at least 0"},
		{name: "coast is NaN", mutate: func(c *Config) { c.CoastDistance = math.NaN() }, wantErr: "coast must be"},
		{name: "negative min extrusion", mutate: func(c *Config) { c.MinExtrusionLength = -0.1 }, wantErr: "min-extrusion must be at least 0"},
		{name: "no workers", mutate: func(c *Config) { c.WorkerCount = 0 }, wantErr: "workers must be at least 1, got 0"},
		{name: "too many workers", mutate: func(c *Config) { c.WorkerCount = 129 }, wantErr: "workers must be at most 128"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: `log-level must be one of [debug info warn error], got "trace"`},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log-format must be one of"},
		{name: "bad extrusion mode", mutate: func(c *Config) { c.ExtrusionMode = "volumetric" }, wantErr: "extrusion-mode must be one of"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()

			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrConfig)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestConfig_Validate_ReportsEveryViolation(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.CoastDistance = 101
	cfg.WorkerCount = 0

	err := cfg.Validate()

	require.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "coast must be at most 100")
	assert.Contains(t, err.Error(), "workers must be at least 1")
}

func TestConfig_ApplyFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	distance, mode, workers, backup := 2.5, "relative", 8, true
	f := &config.File{
		Coast:   &config.Coast{Distance: &distance, ExtrusionMode: &mode},
		Workers: &workers,
		Backup:  &backup,
	}
	base := DefaultConfig()

	// --- Act ---
	got := base.ApplyFile(f)

	// --- Assert ---
	want := DefaultConfig()
	want.CoastDistance = 2.5
	want.ExtrusionMode = "relative"
	want.WorkerCount = 8
	want.Backup = true
	assert.Equal(t, want, got)
	assert.Equal(t, DefaultConfig(), base, "receiver must not change")
	assert.Equal(t, base, base.ApplyFile(nil))
}

func TestConfig_CoastConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.MinExtrusionLength = 0.7

	assert.Equal(t, coast.Config{
		CoastDistance:            DefaultCoastDistance,
		PrimePillarCoastDistance: DefaultPrimePillarCoastDistance,
		MinExtrusionLength:       0.7,
		ExtrusionMode:            coast.Absolute,
	}, cfg.CoastConfig())
}

func TestConfig_VerboseForcesDebug(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.LogLevel = "error"
	cfg.Verbose = true

	assert.Equal(t, "debug", cfg.logLevel())
}
