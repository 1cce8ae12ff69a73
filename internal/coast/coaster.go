package coast

import (
	"context"
	"fmt"
	"math"

	"github.com/specialistvlad/kisscoast/internal/ctxlog"
	"github.com/specialistvlad/kisscoast/internal/gcode"
)

// Result is the output of one coasting run.
type Result struct {
	Lines  []string
	Stats  Stats
	Events []Event
}

// Coaster applies a Config to command buffers. It holds no per-run state
// and may be shared between goroutines.
type Coaster struct {
	cfg Config
}

// New returns a Coaster for cfg. An empty ExtrusionMode means Absolute.
func New(cfg Config) *Coaster {
	if cfg.ExtrusionMode == "" {
		cfg.ExtrusionMode = Absolute
	}
	return &Coaster{cfg: cfg}
}

// Config returns the coaster's configuration.
func (c *Coaster) Config() Config {
	return c.cfg
}

// Run coasts every marked path in lines, in index order. lines is not
// modified.
func (c *Coaster) Run(ctx context.Context, lines []string) Result {
	logger := ctxlog.FromContext(ctx)
	p := newPlan()
	var res Result

	isPrime := false
	for x, line := range lines {
		if gcode.IsPrimePillar(line) {
			isPrime = true
		}
		if !gcode.IsDestring(line) {
			continue
		}

		cat := Regular
		if isPrime {
			cat = Prime
		}
		ev := c.coastPath(lines, x, cat, p)
		res.Events = append(res.Events, ev)
		res.Stats.record(cat, ev.Outcome.IsCoasted())
		isPrime = false

		logger.Debug("Destring marker handled.",
			"line", x,
			"category", cat.String(),
			"outcome", ev.Outcome.String(),
			"path_mm", ev.PathLength,
			"coast_mm", ev.CoastDistance,
			"degenerate", ev.Degenerate,
		)
	}

	res.Lines = p.apply(lines)
	return res
}

// segment is one measured move of a path, from lines[start] to lines[end].
type segment struct {
	start, end int
	from, to   gcode.Point
	length     float64
}

// walkPath measures the path ending just before the marker at index end.
// Segments come back ordered from the path's tail towards its start. ok is
// false when the walk ran off the front of lines before reaching the
// path's start.
//
// A single non-motion line between two moves (an extrusion-only prime, for
// example) is stepped over. A boundary line, or two non-motion lines in a
// row, is the start of the path.
func walkPath(lines []string, end int) (segs []segment, ok bool) {
	q := end - 1
	if q >= 0 && !gcode.Parse(lines[q]).HasMotion {
		// The separator between the path and its marker.
		q--
	}
	if q < 0 {
		return nil, false
	}
	to := gcode.Parse(lines[q])
	if !to.HasMotion {
		return nil, true
	}

	for {
		p := q - 1
		if p < 0 {
			return segs, false
		}
		from := gcode.Parse(lines[p])
		if !from.HasMotion {
			if gcode.IsBoundary(lines[p]) {
				return segs, true
			}
			p--
			if p < 0 {
				return segs, false
			}
			from = gcode.Parse(lines[p])
			if !from.HasMotion {
				return segs, true
			}
		}

		a, b := gcode.Segment(from, to)
		segs = append(segs, segment{start: p, end: q, from: a, to: b, length: gcode.Dist(a, b)})
		q, to = p, from
	}
}

func pathLength(segs []segment) float64 {
	var l float64
	for _, s := range segs {
		l += s.length
	}
	return l
}

// coastPath handles the destring marker at index end.
func (c *Coaster) coastPath(lines []string, end int, cat Category, p *plan) Event {
	ev := Event{Line: end, Category: cat, SplitLine: -1}

	segs, ok := walkPath(lines, end)
	if !ok {
		ev.Outcome = Unscannable
		return ev
	}
	length := pathLength(segs)
	ev.PathLength = length

	minLen := c.cfg.MinExtrusionLength
	if minLen >= length {
		ev.Outcome = TooShort
		p.note(end, fmt.Sprintf("Path too short to coast (%s mm, minimum extrusion %s mm)",
			gcode.FormatNumber(round4(length)), gcode.FormatNumber(minLen)))
		return ev
	}

	dist := c.cfg.distanceFor(cat)
	if minLen+dist > length {
		dist = length - minLen
	}
	ev.CoastDistance = dist

	var cum float64
	for _, s := range segs {
		cum += s.length
		if cum <= dist {
			continue
		}
		ratio := (cum - dist) / s.length
		c.split(lines, s, segs[len(segs)-1].start, ratio, dist, end, p, &ev)
		ev.Outcome = Coasted
		return ev
	}

	// Nothing left to print before the coast point: the whole path coasts.
	p.strip(segs[len(segs)-1].start, end)
	ev.Outcome = Stripped
	return ev
}

// split replaces the move of s with one that stops extruding at ratio along
// it, follows it with a dry move to the original end point, and strips
// extrusion from the rest of the path up to the marker at end.
func (c *Coaster) split(lines []string, s segment, pathStart int, ratio, dist float64, end int, p *plan, ev *Event) {
	from := gcode.Parse(lines[s.start])
	to := gcode.Parse(lines[s.end])

	splitAt := gcode.Lerp(s.from, s.to, ratio)
	e := c.splitExtrusion(lines, to, pathStart, s.end, ratio)
	z := to.Z
	if !z.Set {
		z = from.Z
	}
	f := to.F
	if !f.Set {
		f = from.F
	}

	coastNote := fmt.Sprintf("Begin coast (%s mm)", gcode.FormatNumber(round4(dist)))
	first := gcode.FormatMove(splitAt, e, z, f, "Calculated endpoint of extrusion")
	ev.SplitLine = s.end

	if gcode.Dist(splitAt, s.to) > MinSegmentLength {
		p.replace(s.end, first)
		p.insertAfter(s.end, gcode.FormatMove(s.to, gcode.Value{}, to.Z, f, coastNote))
	} else {
		ev.Degenerate = true
		skipNote := fmt.Sprintf("Skipping tiny segment and beginning coast (%s mm)", gcode.FormatNumber(round4(dist)))
		if next := s.end + 1; next < end && !gcode.IsBoundary(lines[next]) {
			p.replace(s.end, first)
			p.note(next, skipNote)
		} else {
			p.replace(s.end, gcode.Annotate(first, skipNote))
		}
	}
	p.strip(s.end+1, end)
}

// splitExtrusion interpolates the E word at the split point. In absolute
// mode the base is the last E position written before the segment's end
// line, which includes an extrusion-only line stepped over inside the
// segment.
func (c *Coaster) splitExtrusion(lines []string, to gcode.Move, pathStart, endIdx int, ratio float64) gcode.Value {
	if c.cfg.ExtrusionMode == Relative {
		if !to.E.Set {
			return gcode.Value{}
		}
		return gcode.Some(ratio * to.E.V)
	}

	var base gcode.Value
	for i := endIdx - 1; !base.Set && i >= pathStart; i-- {
		base = gcode.Parse(lines[i]).E
	}
	if !to.E.Set {
		return base
	}
	if !base.Set {
		// No earlier position in this path: keep the segment's full amount
		// rather than guess one and risk running the filament backwards.
		return to.E
	}
	return gcode.Some(base.V + ratio*(to.E.V-base.V))
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
