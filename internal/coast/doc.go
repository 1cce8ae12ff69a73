// Package coast rewrites the tail of every marked path so the extruder stops
// depositing material a configured distance before the path ends.
//
// A run reads its input as an immutable slice of lines. Each destring marker
// triggers a backward walk over the path that precedes it: the walk measures
// the path in the horizontal plane, picks the point where extrusion should
// stop, and records edits against original line indices. The edits are
// applied once at the end to build the output, so no insertion ever shifts
// the indices another event relies on.
//
// Per-path outcomes are never errors. Paths that cannot be measured or are
// too short are left alone and counted as skipped.
package coast
