package gcode

import (
	"math"
	"strconv"
	"strings"
)

// MotionOpcode is the opcode prefix that makes a line motion-class.
const MotionOpcode = "G1"

// Value is an optional numeric word. An unset Value is distinct from a
// present zero.
type Value struct {
	V   float64
	Set bool
}

// Some returns a set Value holding v.
func Some(v float64) Value {
	return Value{V: v, Set: true}
}

// Or returns the held value, or def when unset.
func (v Value) Or(def float64) float64 {
	if v.Set {
		return v.V
	}
	return def
}

// Move is the structured form of a single command line.
type Move struct {
	X, Y, Z Value
	E       Value
	F       Value

	// HasMotion is true only for motion-class lines that carry at least one
	// of X, Y or Z.
	HasMotion bool
}

// Point is a position in the horizontal plane.
type Point struct {
	X, Y float64
}

// Lerp returns the point at fraction t along a->b.
func Lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Dist is the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Parse reads one line. Non-motion-class lines yield a zero Move. Words after
// a ';' are comment text and are never read as fields; malformed numbers are
// ignored.
func Parse(line string) Move {
	var m Move
	code, _ := splitComment(line)
	fields := strings.Fields(code)

	motion := false
	for _, tok := range fields {
		if !motion {
			motion = strings.HasPrefix(tok, MotionOpcode)
			continue
		}
		if len(tok) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(tok[1:], 64)
		if err != nil {
			continue
		}
		switch tok[0] {
		case 'X':
			m.X, m.HasMotion = Some(v), true
		case 'Y':
			m.Y, m.HasMotion = Some(v), true
		case 'Z':
			m.Z, m.HasMotion = Some(v), true
		case 'E':
			m.E = Some(v)
		case 'F':
			m.F = Some(v)
		}
	}
	if !motion {
		return Move{}
	}
	return m
}

// IsMotionClass reports whether the line's command starts with MotionOpcode.
func IsMotionClass(line string) bool {
	code, _ := splitComment(line)
	for _, tok := range strings.Fields(code) {
		if strings.HasPrefix(tok, MotionOpcode) {
			return true
		}
	}
	return false
}

// Segment resolves the horizontal endpoints of the move a->b. A coordinate
// missing on one side takes the other side's value, so an axis that was not
// written contributes no travel.
func Segment(a, b Move) (Point, Point) {
	ax, bx := resolve(a.X, b.X)
	ay, by := resolve(a.Y, b.Y)
	return Point{X: ax, Y: ay}, Point{X: bx, Y: by}
}

func resolve(a, b Value) (float64, float64) {
	switch {
	case a.Set && b.Set:
		return a.V, b.V
	case a.Set:
		return a.V, a.V
	case b.Set:
		return b.V, b.V
	default:
		return 0, 0
	}
}

// Distance is the horizontal-plane distance between two moves. Z is ignored.
func Distance(a, b Move) float64 {
	p, q := Segment(a, b)
	return Dist(p, q)
}

// StripExtrusion removes the E word from a motion-class line, keeping every
// other word in order and any trailing comment verbatim. A move left with
// nothing but its opcode is commented out instead. Lines without an E word,
// and lines that are not motion-class, are returned unchanged.
func StripExtrusion(line string) string {
	if !IsMotionClass(line) {
		return line
	}
	code, comment := splitComment(line)
	fields := strings.Fields(code)
	kept := fields[:0:0]
	removed := false
	for _, tok := range fields {
		if strings.HasPrefix(tok, "E") {
			removed = true
			continue
		}
		kept = append(kept, tok)
	}
	if !removed {
		return line
	}
	if len(kept) == 1 && strings.HasPrefix(kept[0], MotionOpcode) {
		return "; " + strings.TrimSpace(line)
	}
	out := strings.Join(kept, " ")
	if comment != "" {
		out += " " + comment
	}
	return out
}

// splitComment returns the command part and the comment (including its
// leading ';'), if any.
func splitComment(line string) (string, string) {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i], line[i:]
	}
	return line, ""
}
