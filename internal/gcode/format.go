package gcode

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMove renders a motion line to p. X, Y and E use four decimals; Z and
// F are written in their shortest exact form. Unset words are omitted and a
// non-empty comment is appended after " ; ".
func FormatMove(p Point, e, z, f Value, comment string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s X%.4f Y%.4f", MotionOpcode, p.X, p.Y)
	if e.Set {
		fmt.Fprintf(&b, " E%.4f", e.V)
	}
	if z.Set {
		b.WriteString(" Z" + FormatNumber(z.V))
	}
	if f.Set {
		b.WriteString(" F" + FormatNumber(f.V))
	}
	if comment != "" {
		b.WriteString(" ; " + comment)
	}
	return b.String()
}

// FormatNumber writes v without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Annotate appends a comment to line.
func Annotate(line, comment string) string {
	return line + " ; " + comment
}
