package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/specialistvlad/kisscoast/internal/ctxlog"
)

// Watch processes every *.gcode program that is created or written in dir
// once it has been quiet for the configured debounce window. It returns nil
// when ctx is canceled. Failures on one program are logged and do not stop
// the watch. The metrics file, when configured, is rewritten after each
// program with the totals since the watch started.
func (a *App) Watch(ctx context.Context, dir string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger.With("dir", dir)

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, dir)
		}
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	debounce := a.cfg.WatchDebounce
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	total := a.newSnapshot(dir)
	logger.Info("Watching for programs.", "debounce", debounce)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Watch stopped.")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), InputExtension) {
				continue
			}
			logger.Debug("Change detected.", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = a.now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)

		case <-ticker.C:
			now := a.now()
			for path, last := range pending {
				if now.Sub(last) < debounce {
					continue
				}
				delete(pending, path)
				r := a.processWatched(ctx, path)
				if r == nil {
					continue
				}
				total.Add(r.snapshot())
				if err := a.exportMetrics(total); err != nil {
					logger.Error("Failed to write metrics.", "error", err)
				}
			}
		}
	}
}

// processWatched coasts one program and logs any failure. It returns nil
// when nothing was written.
func (a *App) processWatched(ctx context.Context, path string) *Report {
	r, err := a.Process(ctx, path)
	switch {
	case err == nil:
		return r
	case errors.Is(err, ErrAlreadyCoasted):
		a.logger.Debug("Ignoring already coasted program.", "input", path)
	case errors.Is(err, ErrInputNotFound):
		a.logger.Debug("Program vanished before processing.", "input", path)
	default:
		a.logger.Error("Failed to coast program.", "input", path, "error", err)
	}
	return nil
}
