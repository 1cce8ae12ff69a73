package gcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		line string
		want Move
	}{
		{
			name: "full move",
			line: "G1 X10.5 Y-2 Z0.3 E1.25 F1800",
			want: Move{X: Some(10.5), Y: Some(-2), Z: Some(0.3), E: Some(1.25), F: Some(1800), HasMotion: true},
		},
		{
			name: "words in any order",
			line: "G1 F600 E0.5 Y3 X4",
			want: Move{X: Some(4), Y: Some(3), E: Some(0.5), F: Some(600), HasMotion: true},
		},
		{
			name: "explicit zero is set",
			line: "G1 X0 Y0 E0",
			want: Move{X: Some(0), Y: Some(0), E: Some(0), HasMotion: true},
		},
		{
			name: "extrusion only has no motion",
			line: "G1 E-1.5 F2400",
			want: Move{E: Some(-1.5), F: Some(2400)},
		},
		{
			name: "z only is motion",
			line: "G1 Z0.6",
			want: Move{Z: Some(0.6), HasMotion: true},
		},
		{
			name: "comment words are ignored",
			line: "G1 X1 Y2 ; Extrude X marks",
			want: Move{X: Some(1), Y: Some(2), HasMotion: true},
		},
		{
			name: "non-motion command",
			line: "M104 S210",
			want: Move{},
		},
		{
			name: "comment line",
			line: "; 'Perimeter Path', 0.3 [feed mm/s]",
			want: Move{},
		},
		{
			name: "words before the opcode are not fields",
			line: "N10 X5 G1 Y4",
			want: Move{Y: Some(4), HasMotion: true},
		},
		{
			name: "malformed number is skipped",
			line: "G1 Xabc Y1",
			want: Move{Y: Some(1), HasMotion: true},
		},
		{
			name: "empty line",
			line: "",
			want: Move{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Parse(tc.line))
		})
	}
}

func TestDistance(t *testing.T) {
	t.Parallel()

	a := Parse("G1 X0 Y0 E0")
	b := Parse("G1 X3 Y4 Z9 E1")

	assert.InDelta(t, 5.0, Distance(a, b), 1e-12, "Z must not contribute")
	assert.InDelta(t, 5.0, Distance(b, a), 1e-12)
	assert.Zero(t, Distance(a, a))
	assert.Zero(t, Distance(b, b))

	// An axis missing on one side keeps the other side's value.
	c := Parse("G1 Y10 E2")
	assert.InDelta(t, 6.0, Distance(b, c), 1e-12)

	moves := []string{"G1 X-3 Y7", "G1 X1e2 Y-40", "G1 Z1", "G1 X0.0001 Y0.0002"}
	for _, l1 := range moves {
		for _, l2 := range moves {
			d := Distance(Parse(l1), Parse(l2))
			assert.GreaterOrEqual(t, d, 0.0)
			assert.False(t, math.IsNaN(d))
		}
	}
}

func TestLerp(t *testing.T) {
	t.Parallel()

	a, b := Point{X: 0, Y: 0}, Point{X: 10, Y: -4}
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, Point{X: 5, Y: -2}, Lerp(a, b, 0.5))
}

func TestStripExtrusion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		line string
		want string
	}{
		{name: "removes E keeps order", line: "G1 X1 E0.5 Y2 F300", want: "G1 X1 Y2 F300"},
		{name: "keeps comment", line: "G1 X1 Y2 E3 ; Extrude", want: "G1 X1 Y2 ; Extrude"},
		{name: "no E is unchanged", line: "G1  X1   Y2", want: "G1  X1   Y2"},
		{name: "comment only", line: "; Extrusion width", want: "; Extrusion width"},
		{name: "non-motion command untouched", line: "G92 E0", want: "G92 E0"},
		{name: "extrusion-only move keeps feed rate", line: "G1 E-2 F2400", want: "G1 F2400"},
		{name: "bare extrusion is commented out", line: "G1 E1.2", want: "; G1 E1.2"},
		{name: "bare extrusion with comment", line: "G1 E1.2 ; prime", want: "; G1 E1.2 ; prime"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := StripExtrusion(tc.line)
			require.Equal(t, tc.want, got)
			require.Equal(t, got, StripExtrusion(got), "must be idempotent")
		})
	}
}

func TestFormatMove(t *testing.T) {
	t.Parallel()

	p := Point{X: 5, Y: 0.12345}
	assert.Equal(t, "G1 X5.0000 Y0.1235 E0.5000 Z0.3 F1800 ; note",
		FormatMove(p, Some(0.5), Some(0.3), Some(1800), "note"))
	assert.Equal(t, "G1 X5.0000 Y0.1235", FormatMove(p, Value{}, Value{}, Value{}, ""))

	// Formatted output parses back to the same fields.
	m := Parse(FormatMove(p, Some(0.5), Value{}, Some(600), "x"))
	assert.InDelta(t, 5.0, m.X.V, 1e-9)
	assert.InDelta(t, 0.5, m.E.V, 1e-9)
	assert.False(t, m.Z.Set)
}
