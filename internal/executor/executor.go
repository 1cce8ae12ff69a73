package executor

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/kisscoast/internal/artifact"
	"github.com/specialistvlad/kisscoast/internal/coast"
	"github.com/specialistvlad/kisscoast/internal/ctxlog"
	"github.com/specialistvlad/kisscoast/internal/partition"
)

// ErrWorkerFailure is returned when a worker cannot complete its chunk.
var ErrWorkerFailure = errors.New("worker failed")

// Executor runs one coaster over many chunks concurrently.
type Executor struct {
	coaster    *coast.Coaster
	numWorkers int
	store      artifact.Store
}

// New creates an executor with numWorkers workers. A nil store means an
// in-memory one.
func New(coaster *coast.Coaster, numWorkers int, store artifact.Store) *Executor {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if store == nil {
		store = artifact.NewMemStore()
	}
	return &Executor{coaster: coaster, numWorkers: numWorkers, store: store}
}

// Run coasts lines and returns the merged result. Event line numbers refer
// to positions in lines. lines is not modified.
func (e *Executor) Run(ctx context.Context, lines []string) (coast.Result, error) {
	logger := ctxlog.FromContext(ctx)

	ranges := partition.Split(lines, e.numWorkers)
	logger.Debug("Buffer partitioned.", "lines", len(lines), "chunks", len(ranges), "workers", e.numWorkers)

	for _, r := range ranges {
		if err := e.store.PutInput(ctx, r.Index, lines[r.Start:r.End]); err != nil {
			return coast.Result{}, fmt.Errorf("failed to hand off chunk %d: %w", r.Index, err)
		}
	}

	results := make([]coast.Result, len(ranges))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.numWorkers)

	logger.Debug("Starting worker pool.", "workers", e.numWorkers)
	for i, r := range ranges {
		g.Go(func() error {
			res, err := e.work(gCtx, i, r)
			if err != nil {
				return fmt.Errorf("%w: chunk %d: %w", ErrWorkerFailure, r.Index, err)
			}
			results[i] = res
			return nil
		})
	}

	logger.Debug("Waiting for all chunks to complete...")
	if err := g.Wait(); err != nil {
		return coast.Result{}, err
	}
	logger.Debug("All chunks completed.")

	return e.merge(ctx, ranges, results)
}

// work is a single worker's whole job: load its chunk, coast it, store the
// result.
func (e *Executor) work(ctx context.Context, workerID int, r partition.Range) (coast.Result, error) {
	ctx = ctxlog.With(ctx, "workerID", workerID, "chunk", r.Index, "first_line", r.Start)
	logger := ctxlog.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return coast.Result{}, err
	}
	logger.Debug("Worker picked up chunk.", "lines", r.Len())

	chunk, err := e.store.Input(ctx, r.Index)
	if err != nil {
		return coast.Result{}, err
	}

	res := e.coaster.Run(ctx, chunk)
	for i := range res.Events {
		res.Events[i].Line += r.Start
		if res.Events[i].SplitLine >= 0 {
			res.Events[i].SplitLine += r.Start
		}
	}

	if err := e.store.PutOutput(ctx, r.Index, res.Lines); err != nil {
		return coast.Result{}, err
	}
	logger.Debug("Worker finished chunk.", "paths", res.Stats.Paths())
	return res, nil
}

// merge concatenates outputs in chunk order and sums statistics.
func (e *Executor) merge(ctx context.Context, ranges []partition.Range, results []coast.Result) (coast.Result, error) {
	var merged coast.Result
	for i, r := range ranges {
		out, err := e.store.Output(ctx, r.Index)
		if err != nil {
			return coast.Result{}, fmt.Errorf("%w: chunk %d: %w", ErrWorkerFailure, r.Index, err)
		}
		merged.Lines = append(merged.Lines, out...)
		merged.Stats.Add(results[i].Stats)
		merged.Events = append(merged.Events, results[i].Events...)
	}
	return merged, nil
}
