// Package metrics exports the statistics of a coasting run in the Prometheus
// text format, for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/specialistvlad/kisscoast/internal/coast"
)

const namespace = "kisscoast"

// Snapshot is everything recorded about a run over one or more programs.
// Input names the file or directory the run was started on.
type Snapshot struct {
	Input    string
	Programs int
	Stats    coast.Stats
	Events   []coast.Event
	Lines    int
	Workers  int
	Duration time.Duration
}

// Add folds another program's figures into s. Input and Workers of s are
// kept.
func (s *Snapshot) Add(other Snapshot) {
	s.Programs += other.Programs
	s.Stats.Add(other.Stats)
	s.Events = append(s.Events, other.Events...)
	s.Lines += other.Lines
	s.Duration += other.Duration
}

// Registry builds a registry holding the gauges for snap.
func Registry(snap Snapshot) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"input": snap.Input}

	paths := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "paths",
		Help:        "Destring paths by category and result.",
		ConstLabels: constLabels,
	}, []string{"category", "result"})
	paths.WithLabelValues("regular", "coasted").Set(float64(snap.Stats.RegularCoasted))
	paths.WithLabelValues("regular", "skipped").Set(float64(snap.Stats.RegularSkipped))
	paths.WithLabelValues("prime", "coasted").Set(float64(snap.Stats.PrimeCoasted))
	paths.WithLabelValues("prime", "skipped").Set(float64(snap.Stats.PrimeSkipped))

	outcomes := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "path_outcomes",
		Help:        "Destring paths by detailed outcome.",
		ConstLabels: constLabels,
	}, []string{"outcome"})
	for _, o := range []coast.Outcome{coast.Coasted, coast.Stripped, coast.TooShort, coast.Unscannable} {
		outcomes.WithLabelValues(o.String())
	}
	for _, ev := range snap.Events {
		outcomes.WithLabelValues(ev.Outcome.String()).Inc()
	}

	gauge := func(name, help string, v float64) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
		g.Set(v)
		return g
	}

	for _, c := range []prometheus.Collector{
		paths,
		outcomes,
		gauge("programs", "Programs coasted.", float64(snap.Programs)),
		gauge("lines", "Lines in the coasted output, header and trailer excluded.", float64(snap.Lines)),
		gauge("workers", "Workers used for the run.", float64(snap.Workers)),
		gauge("duration_seconds", "Wall time spent coasting.", snap.Duration.Seconds()),
		gauge("last_run_timestamp_seconds", "Unix time the run finished.", float64(time.Now().Unix())),
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return reg, nil
}

// WriteTextfile writes snap to path. The file is replaced atomically.
func WriteTextfile(path string, snap Snapshot) error {
	reg, err := Registry(snap)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", path, err)
	}
	return nil
}
