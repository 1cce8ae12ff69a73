package gcode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	t.Parallel()

	lines, err := ReadLines(strings.NewReader(";\r\nG1 X0 Y0 E0\r\nG1 X10 Y0 E1\n;"))
	require.NoError(t, err)
	assert.Equal(t, []string{";", "G1 X0 Y0 E0", "G1 X10 Y0 E1", ";"}, lines)
}

func TestWriteLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, []string{";", "G1 X1"}))
	assert.Equal(t, ";\r\nG1 X1\r\n", buf.String())

	back, err := ReadLines(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{";", "G1 X1"}, back)
}

func TestMarkers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBoundary(";"))
	assert.True(t, IsBoundary("  ;\t"))
	assert.False(t, IsBoundary("; comment"))
	assert.False(t, IsBoundary(""))

	assert.True(t, IsPrimePillar("; 'Prime Pillar Path', 0.3 [feed mm/s], 30.0 [head mm/s]"))
	assert.True(t, IsDestring("; 'Destring/Wipe/Jump Path', 0.0 [feed mm/s], 150.0 [head mm/s]"))
	assert.False(t, IsDestring("; 'Perimeter Path'"))
}
