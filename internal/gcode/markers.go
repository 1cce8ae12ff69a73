package gcode

import "strings"

// Sentinels the path planner writes into comment lines.
const (
	// PrimePillarMarker opens a prime pillar path.
	PrimePillarMarker = "Prime Pillar Path"
	// DestringMarker opens the travel that follows a path needing a coast.
	DestringMarker = "Destring/Wipe/Jump Path"
	// BoundaryLine is the whole trimmed content of a path separator line.
	BoundaryLine = ";"
)

// IsBoundary reports whether line is a path separator.
func IsBoundary(line string) bool {
	return strings.TrimSpace(line) == BoundaryLine
}

// IsPrimePillar reports whether line starts a prime pillar path.
func IsPrimePillar(line string) bool {
	return strings.Contains(line, PrimePillarMarker)
}

// IsDestring reports whether line marks the end of a path to coast.
func IsDestring(line string) bool {
	return strings.Contains(line, DestringMarker)
}
