package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/kisscoast/internal/ctxlog"
)

// YAMLLoader is the YAML implementation of Loader.
type YAMLLoader struct{}

// NewYAMLLoader creates a new YAML configuration loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load decodes a YAML file. Unknown keys are rejected.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*File, error) {
	ctxlog.FromContext(ctx).Debug("YAML loader started.", "path", path)

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", path, err)
	}
	defer fh.Close()

	var f File
	dec := yaml.NewDecoder(fh)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	return &f, nil
}
