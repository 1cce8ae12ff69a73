package artifact

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemStore is an in-memory Store built on sync.Map: every worker touches
// only its own chunk keys, so there is no contention on a shared lock.
type MemStore struct {
	inputs  sync.Map // chunk index -> []string
	outputs sync.Map // chunk index -> []string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// PutInput stores a private copy of lines.
func (s *MemStore) PutInput(ctx context.Context, chunk int, lines []string) error {
	s.inputs.Store(chunk, slices.Clone(lines))
	return nil
}

// Input returns a private copy of the chunk's input.
func (s *MemStore) Input(ctx context.Context, chunk int) ([]string, error) {
	return load(&s.inputs, chunk, "input")
}

// PutOutput stores a private copy of lines.
func (s *MemStore) PutOutput(ctx context.Context, chunk int, lines []string) error {
	s.outputs.Store(chunk, slices.Clone(lines))
	return nil
}

// Output returns a private copy of the chunk's output.
func (s *MemStore) Output(ctx context.Context, chunk int) ([]string, error) {
	return load(&s.outputs, chunk, "output")
}

// Close drops every artifact.
func (s *MemStore) Close(ctx context.Context) error {
	s.inputs.Clear()
	s.outputs.Clear()
	return nil
}

func load(m *sync.Map, chunk int, kind string) ([]string, error) {
	v, ok := m.Load(chunk)
	if !ok {
		return nil, fmt.Errorf("%w: chunk %d %s", ErrNotFound, chunk, kind)
	}
	return slices.Clone(v.([]string)), nil
}
