package raster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleASC = `ncols 3
nrows 2
xllcorner 100.0
yllcorner -10.0
cellsize 0.5
NODATA_value -9999
0.1 0.2 0.3
1.0 -9999 3.0
`

func writeASC(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hazard.asc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadASCIIGrid(t *testing.T) {
	g, err := ReadASCIIGrid(writeASC(t, sampleASC))
	require.NoError(t, err)

	assert.Equal(t, 3, g.Cols)
	assert.Equal(t, 2, g.Rows)
	assert.Equal(t, 100.0, g.XMin)
	assert.Equal(t, -10.0, g.YMin)
	assert.Equal(t, 0.5, g.CellSize)
	assert.Equal(t, -9999.0, g.NoData)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 1.0, -9999, 3.0}, g.Values)

	// North-west corner cell is the first value.
	v, ok := g.Sample(100.25, -9.25, Nearest)
	require.True(t, ok)
	assert.InDelta(t, 0.1, v, 1e-9)

	// The no-data cell reads as absent.
	_, ok = g.Sample(100.75, -9.75, Nearest)
	assert.False(t, ok)
}

func TestReadASCIIGridWithoutNoDataLine(t *testing.T) {
	g, err := ReadASCIIGrid(writeASC(t, `ncols 2
nrows 1
xllcorner 0
yllcorner 0
cellsize 1
5 6
`))
	require.NoError(t, err)
	assert.Equal(t, -9999.0, g.NoData)
	assert.Equal(t, []float64{5, 6}, g.Values)
}

func TestReadASCIIGridErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "value count mismatch",
			content: `ncols 2
nrows 2
xllcorner 0
yllcorner 0
cellsize 1
1 2 3
`,
		},
		{
			name: "non-numeric cell",
			content: `ncols 1
nrows 1
xllcorner 0
yllcorner 0
cellsize 1
abc
`,
		},
		{
			name: "zero dimensions",
			content: `ncols 0
nrows 2
xllcorner 0
yllcorner 0
cellsize 1
`,
		},
		{
			name:    "malformed header",
			content: "ncols\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadASCIIGrid(writeASC(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestReadASCIIGridMissingFile(t *testing.T) {
	_, err := ReadASCIIGrid(filepath.Join(t.TempDir(), "missing.asc"))
	assert.Error(t, err)
}
