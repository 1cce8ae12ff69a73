package artifact

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a chunk has no stored artifact.
	ErrNotFound = errors.New("artifact not found")

	// ErrScratchArea is returned when scratch storage cannot be created.
	ErrScratchArea = errors.New("scratch area unavailable")
)

// Store holds chunk artifacts keyed by chunk index.
type Store interface {
	// PutInput records the lines a worker will coast.
	PutInput(ctx context.Context, chunk int, lines []string) error
	// Input returns the lines recorded by PutInput.
	Input(ctx context.Context, chunk int) ([]string, error)
	// PutOutput records a worker's coasted lines.
	PutOutput(ctx context.Context, chunk int, lines []string) error
	// Output returns the lines recorded by PutOutput.
	Output(ctx context.Context, chunk int) ([]string, error)
	// Close releases the store. Stored artifacts may no longer be readable.
	Close(ctx context.Context) error
}
