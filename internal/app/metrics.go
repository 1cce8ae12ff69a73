package app

import (
	"github.com/specialistvlad/kisscoast/internal/metrics"
)

// snapshot is r in the form the metrics exporter takes.
func (r *Report) snapshot() metrics.Snapshot {
	return metrics.Snapshot{
		Input:    r.Input,
		Programs: 1,
		Stats:    r.Stats,
		Events:   r.Events,
		Lines:    r.Lines,
		Workers:  r.Workers,
		Duration: r.Duration,
	}
}

// newSnapshot starts an empty total labelled with the run's target.
func (a *App) newSnapshot(target string) metrics.Snapshot {
	return metrics.Snapshot{Input: target, Workers: a.cfg.WorkerCount}
}

// exportMetrics replaces the metrics file with snap. It does nothing when
// no metrics file is configured.
func (a *App) exportMetrics(snap metrics.Snapshot) error {
	if a.cfg.MetricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(a.cfg.MetricsFile, snap); err != nil {
		return err
	}
	a.logger.Debug("Metrics written.", "path", a.cfg.MetricsFile, "programs", snap.Programs)
	return nil
}
