package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/specialistvlad/kisscoast/internal/coast"
	"github.com/specialistvlad/kisscoast/internal/config"
)

// Defaults for settings that are neither in a config file nor on the
// command line.
const (
	DefaultCoastDistance            = 1.0
	DefaultPrimePillarCoastDistance = 0.5
	DefaultWorkerCount              = 1
	DefaultWatchDebounce            = 500 * time.Millisecond
)

// Config holds all the necessary configuration for an App instance to run.
// It is passed and stored by value.
type Config struct {
	CoastDistance            float64 `name:"coast" validate:"gte=0,lte=100"`
	PrimePillarCoastDistance float64 `name:"prime-pillar-coast" validate:"gte=0,lte=100"`
	MinExtrusionLength       float64 `name:"min-extrusion" validate:"gte=0"`
	ExtrusionMode            string  `name:"extrusion-mode" validate:"oneof=absolute relative"`

	WorkerCount               int    `name:"workers" validate:"gte=1,lte=128"`
	Backup                    bool   `name:"backup"`
	Overwrite                 bool   `name:"overwrite"`
	KeepIntermediateArtifacts bool   `name:"keep-intermediate"`
	ScratchDir                string `name:"scratch-dir"`
	MetricsFile               string `name:"metrics-file"`

	WatchDebounce time.Duration `name:"debounce" validate:"gte=0"`

	Verbose bool `name:"verbose"`
	// LogLevel is one of debug, info, warn and error. Verbose forces debug.
	LogLevel string `name:"log-level" validate:"oneof=debug info warn error"`
	// LogFormat is text or json. Empty picks text for terminals and json
	// otherwise.
	LogFormat string `name:"log-format" validate:"omitempty,oneof=text json"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		CoastDistance:            DefaultCoastDistance,
		PrimePillarCoastDistance: DefaultPrimePillarCoastDistance,
		ExtrusionMode:            string(coast.Absolute),
		WorkerCount:              DefaultWorkerCount,
		WatchDebounce:            DefaultWatchDebounce,
		LogLevel:                 "info",
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("name"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks every field and reports all violations at once. The
// returned error wraps ErrConfig.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed the %q check", fe.Field(), fe.Tag())
	}
}

// ApplyFile returns a copy of c with every setting present in f applied.
func (c Config) ApplyFile(f *config.File) Config {
	if f == nil {
		return c
	}
	if cb := f.Coast; cb != nil {
		set(&c.CoastDistance, cb.Distance)
		set(&c.PrimePillarCoastDistance, cb.PrimePillarDistance)
		set(&c.MinExtrusionLength, cb.MinExtrusionLength)
		set(&c.ExtrusionMode, cb.ExtrusionMode)
	}
	set(&c.WorkerCount, f.Workers)
	set(&c.Backup, f.Backup)
	set(&c.Overwrite, f.Overwrite)
	set(&c.KeepIntermediateArtifacts, f.KeepIntermediateArtifacts)
	set(&c.ScratchDir, f.ScratchDir)
	set(&c.MetricsFile, f.MetricsFile)
	set(&c.Verbose, f.Verbose)
	set(&c.LogLevel, f.LogLevel)
	set(&c.LogFormat, f.LogFormat)
	return c
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// CoastConfig is the part of c the coaster needs.
func (c Config) CoastConfig() coast.Config {
	return coast.Config{
		CoastDistance:            c.CoastDistance,
		PrimePillarCoastDistance: c.PrimePillarCoastDistance,
		MinExtrusionLength:       c.MinExtrusionLength,
		ExtrusionMode:            coast.ExtrusionMode(c.ExtrusionMode),
	}
}

func (c Config) logLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.LogLevel
}
