package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/specialistvlad/kisscoast/internal/artifact"
	"github.com/specialistvlad/kisscoast/internal/coast"
	"github.com/specialistvlad/kisscoast/internal/ctxlog"
	"github.com/specialistvlad/kisscoast/internal/executor"
	"github.com/specialistvlad/kisscoast/internal/fsutil"
)

// InputExtension is the extension of the programs picked up from a
// directory.
const InputExtension = ".gcode"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	cfg     Config
	logger  *slog.Logger
	coaster *coast.Coaster
	now     func() time.Time
}

// NewApp validates cfg and returns an App logging to logW. The error wraps
// ErrConfig when cfg is invalid.
func NewApp(logW io.Writer, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := newLogger(cfg.logLevel(), cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		cfg:     cfg,
		logger:  logger,
		coaster: coast.New(cfg.CoastConfig()),
		now:     time.Now,
	}, nil
}

// Config returns the configuration the App was built with.
func (a *App) Config() Config {
	return a.cfg
}

// Run processes target, which is either a program or a directory searched
// recursively for *.gcode programs. In directory mode, already coasted
// programs are skipped. The metrics file, when configured, receives the
// totals over every program processed.
func (a *App) Run(ctx context.Context, target string) ([]*Report, error) {
	reports, err := a.run(ctx, target)
	if len(reports) > 0 {
		total := a.newSnapshot(target)
		for _, r := range reports {
			total.Add(r.snapshot())
		}
		err = errors.Join(err, a.exportMetrics(total))
	}
	return reports, err
}

func (a *App) run(ctx context.Context, target string) ([]*Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "target", target)

	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, target)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if !info.IsDir() {
		r, err := a.Process(ctx, target)
		if err != nil {
			return nil, err
		}
		return []*Report{r}, nil
	}

	paths, err := fsutil.FindFilesByExtension(target, InputExtension, artifact.DirPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", target, err)
	}
	a.logger.Info("Programs found.", "dir", target, "count", len(paths))

	var reports []*Report
	for _, p := range paths {
		r, err := a.Process(ctx, p)
		if errors.Is(err, ErrAlreadyCoasted) {
			a.logger.Warn("Skipping already coasted program.", "input", p)
			continue
		}
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Process coasts the program at path and writes the result next to it, or
// over it when Overwrite is set.
func (a *App) Process(ctx context.Context, path string) (*Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger.With("input", path))
	logger := ctxlog.FromContext(ctx)
	start := a.now()

	lines, perm, err := readInput(path)
	if err != nil {
		return nil, err
	}
	if isCoasted(lines) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyCoasted, path)
	}
	logger.Debug("Input loaded.", "lines", len(lines))

	report := &Report{Input: path, Workers: a.cfg.WorkerCount}
	if a.cfg.Backup {
		report.Backup = path + BackupSuffix
		if err := copyFile(path, report.Backup); err != nil {
			return nil, fmt.Errorf("failed to write backup %s: %w", report.Backup, err)
		}
		logger.Debug("Backup file created.", "backup", report.Backup)
	}

	res, err := a.coast(ctx, path, lines)
	if err != nil {
		return nil, err
	}

	report.Output = path + OutputSuffix
	if a.cfg.Overwrite {
		report.Output = path
	}
	if err := writeAtomic(report.Output, perm, header(a.cfg, start), res.Lines, trailer(res.Stats)); err != nil {
		return nil, fmt.Errorf("failed to write output %s: %w", report.Output, err)
	}

	report.Stats = res.Stats
	report.Events = res.Events
	report.Lines = len(res.Lines)
	report.Duration = a.now().Sub(start)

	logger.Info("Coasting finished.",
		"output", report.Output,
		"regular_coasted", res.Stats.RegularCoasted,
		"regular_skipped", res.Stats.RegularSkipped,
		"prime_coasted", res.Stats.PrimeCoasted,
		"prime_skipped", res.Stats.PrimeSkipped,
		"duration", report.Duration,
	)
	return report, nil
}

// coast runs the coaster directly for a single worker and through the
// executor otherwise.
func (a *App) coast(ctx context.Context, path string, lines []string) (coast.Result, error) {
	if a.cfg.WorkerCount <= 1 {
		return a.coaster.Run(ctx, lines), nil
	}

	store, err := a.newStore(path)
	if err != nil {
		return coast.Result{}, err
	}
	defer func() {
		if err := store.Close(ctx); err != nil {
			ctxlog.FromContext(ctx).Warn("Unable to close artifact store.", "error", err)
		}
	}()

	return executor.New(a.coaster, a.cfg.WorkerCount, store).Run(ctx, lines)
}

// newStore picks where chunk artifacts live: a scratch directory when one is
// configured or artifacts are kept, memory otherwise.
func (a *App) newStore(path string) (artifact.Store, error) {
	switch {
	case a.cfg.ScratchDir != "":
		return artifact.NewDirStore(a.cfg.ScratchDir, a.cfg.KeepIntermediateArtifacts)
	case a.cfg.KeepIntermediateArtifacts:
		return artifact.NewDirStore(filepath.Dir(path), true)
	default:
		return artifact.NewMemStore(), nil
	}
}
