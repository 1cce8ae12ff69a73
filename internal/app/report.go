package app

import (
	"fmt"
	"time"

	"github.com/specialistvlad/kisscoast/internal/coast"
	"github.com/specialistvlad/kisscoast/internal/gcode"
)

// HeaderTitle is the first line of every file kisscoast writes.
const HeaderTitle = "; Coasting implemented by kisscoast"

const (
	rule            = "; -------------------------------------------------------------------------------"
	timestampLayout = "2006-01-02 15:04:05"
)

// Report describes one processed input file.
type Report struct {
	Input  string
	Output string
	// Backup is empty unless a backup copy was written.
	Backup   string
	Stats    coast.Stats
	Events   []coast.Event
	Lines    int
	Workers  int
	Duration time.Duration
}

func field(key, value string) string {
	return fmt.Sprintf("; %18s: %s", key, value)
}

// header renders the block written above the coasted program.
func header(cfg Config, at time.Time) []string {
	return []string{
		HeaderTitle,
		rule,
		field("Timestamp", at.Format(timestampLayout)),
		field("coast", gcode.FormatNumber(cfg.CoastDistance)),
		field("primePillarCoast", gcode.FormatNumber(cfg.PrimePillarCoastDistance)),
		field("minExtrusionLength", gcode.FormatNumber(cfg.MinExtrusionLength)),
		field("extrusionMode", cfg.ExtrusionMode),
		field("workers", fmt.Sprint(cfg.WorkerCount)),
		rule,
	}
}

// trailer renders the statistics block written below the coasted program.
func trailer(s coast.Stats) []string {
	return []string{
		rule,
		field("Regular paths", fmt.Sprintf("%d coasted, %d skipped (too short)", s.RegularCoasted, s.RegularSkipped)),
		field("Prime pillar paths", fmt.Sprintf("%d coasted, %d skipped (too short)", s.PrimeCoasted, s.PrimeSkipped)),
		rule,
	}
}
