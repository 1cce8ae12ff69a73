package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/kisscoast/internal/gcode"
)

// Suffixes appended to the input path.
const (
	BackupSuffix = "_backup"
	OutputSuffix = "_out"
)

// readInput loads the program at path.
func readInput(path string) ([]string, fs.FileMode, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, 0, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stat input %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("input %s is a directory", path)
	}

	lines, err := gcode.ReadLines(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read input %s: %w", path, err)
	}
	return lines, info.Mode().Perm(), nil
}

// isCoasted reports whether lines start with the kisscoast header.
func isCoasted(lines []string) bool {
	return len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), HeaderTitle)
}

// copyFile copies src to dst, replacing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// writeAtomic writes the line blocks to dst through a temporary file in the
// same directory, so readers never see a partial program.
func writeAtomic(dst string, perm fs.FileMode, blocks ...[]string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	var lines []string
	for _, b := range blocks {
		lines = append(lines, b...)
	}
	if err := gcode.WriteLines(tmp, lines); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
