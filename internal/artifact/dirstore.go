package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/specialistvlad/kisscoast/internal/ctxlog"
	"github.com/specialistvlad/kisscoast/internal/gcode"
)

// DirPrefix starts the name of every scratch directory.
const DirPrefix = "kisscoast_wd_"

// DirStore keeps chunk artifacts as CRLF text files in a scratch directory.
type DirStore struct {
	dir    string
	runID  string
	retain bool
}

// NewDirStore creates a fresh scratch directory under root. When retain is
// set, Close leaves the directory and its files in place.
func NewDirStore(root string, retain bool) (*DirStore, error) {
	runID := uuid.NewString()[:12]
	dir := filepath.Join(root, DirPrefix+runID)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScratchArea, err)
	}
	return &DirStore{dir: dir, runID: runID, retain: retain}, nil
}

// Dir is the scratch directory.
func (s *DirStore) Dir() string { return s.dir }

// RunID is the namespace of this store's directory.
func (s *DirStore) RunID() string { return s.runID }

func (s *DirStore) path(chunk int, ext string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.%s", chunk, ext))
}

func (s *DirStore) PutInput(ctx context.Context, chunk int, lines []string) error {
	return writeFile(s.path(chunk, "in"), lines)
}

func (s *DirStore) Input(ctx context.Context, chunk int) ([]string, error) {
	return readFile(s.path(chunk, "in"))
}

func (s *DirStore) PutOutput(ctx context.Context, chunk int, lines []string) error {
	return writeFile(s.path(chunk, "out"), lines)
}

func (s *DirStore) Output(ctx context.Context, chunk int) ([]string, error) {
	return readFile(s.path(chunk, "out"))
}

// Close removes the scratch directory unless it is retained. A failed
// removal is only logged.
func (s *DirStore) Close(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if s.retain {
		logger.Info("Keeping intermediate artifacts.", "dir", s.dir)
		return nil
	}
	if err := os.RemoveAll(s.dir); err != nil {
		logger.Warn("Unable to remove scratch directory.", "dir", s.dir, "error", err)
	}
	return nil
}

func writeFile(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gcode.WriteLines(f, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return nil, err
	}
	defer f.Close()
	return gcode.ReadLines(f)
}
