// Package partition divides a command buffer into contiguous chunks that
// can be coasted independently.
//
// A naive cut at len/n lines could land inside a path, and the path's
// backward walk would then stop at the chunk edge instead of at its own
// boundary. Each cut is therefore pushed forward, the way a content-defined
// chunker skips to a minimum size and then searches for a boundary, until a
// destring marker has been passed and a boundary line follows it. The
// boundary line opens the next chunk, so the first path of every chunk still
// sees its separator.
package partition

import "github.com/specialistvlad/kisscoast/internal/gcode"

// Range is a half-open span [Start, End) of line indices.
type Range struct {
	Index int
	Start int
	End   int
}

// Len is the number of lines in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Split returns at most n non-empty ranges covering lines in order. The last
// range always runs to the end of lines. When no safe cut remains, fewer
// ranges are returned. An empty buffer yields a single empty range.
func Split(lines []string, n int) []Range {
	if n < 1 {
		n = 1
	}
	size := len(lines) / n

	var ranges []Range
	start := 0
	for k := 1; k < n && start < len(lines); k++ {
		cut := FindCut(lines, max(k*size, start))
		if cut < 0 {
			break
		}
		ranges = append(ranges, Range{Index: len(ranges), Start: start, End: cut})
		start = cut
	}
	if start < len(lines) || len(ranges) == 0 {
		ranges = append(ranges, Range{Index: len(ranges), Start: start, End: len(lines)})
	}
	return ranges
}

// FindCut returns the index of the first boundary line at or after from
// that follows a destring marker which is itself at or after from, or -1.
func FindCut(lines []string, from int) int {
	seen := false
	for y := from; y < len(lines); y++ {
		switch {
		case gcode.IsDestring(lines[y]):
			seen = true
		case seen && gcode.IsBoundary(lines[y]):
			return y
		}
	}
	return -1
}
