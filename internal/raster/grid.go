// Package raster holds the in-memory hazard grid and the sampling methods
// used to interpolate continuous hazard values at exposure locations.
package raster

import (
	"math"

	"github.com/rotisserie/eris"
)

// Method selects how a grid is sampled at a point.
type Method string

const (
	// Nearest samples the cell containing the point. Default.
	Nearest Method = "nearest"
	// Bilinear interpolates between the four surrounding cell centres.
	Bilinear Method = "bilinear"
)

// ParseMethod validates a configured interpolation method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case Nearest, Bilinear:
		return Method(s), nil
	case "":
		return Nearest, nil
	default:
		return "", eris.Errorf("raster: unknown interpolation method %q", s)
	}
}

// Grid is a regular raster with square cells. XMin/YMin is the lower-left
// corner of the grid extent; values are stored row-major with row 0 at the
// top (north), matching the on-disk layout of ESRI ASCII grids.
type Grid struct {
	Cols     int
	Rows     int
	XMin     float64
	YMin     float64
	CellSize float64
	NoData   float64
	Values   []float64
}

// value returns the cell at (col, row) with row 0 at the top.
func (g *Grid) value(col, row int) float64 {
	return g.Values[row*g.Cols+col]
}

// contains reports whether the point is inside the grid extent.
func (g *Grid) contains(x, y float64) bool {
	return x >= g.XMin && x <= g.XMin+float64(g.Cols)*g.CellSize &&
		y >= g.YMin && y <= g.YMin+float64(g.Rows)*g.CellSize
}

// Sample returns the hazard value at (x, y) using the given method.
// The second return is false when the point is outside the grid extent or
// the sampled cells hold the grid's no-data value.
func (g *Grid) Sample(x, y float64, method Method) (float64, bool) {
	if !g.contains(x, y) {
		return 0, false
	}
	if method == Bilinear {
		return g.sampleBilinear(x, y)
	}
	return g.sampleNearest(x, y)
}

func (g *Grid) sampleNearest(x, y float64) (float64, bool) {
	col := int((x - g.XMin) / g.CellSize)
	row := g.Rows - 1 - int((y-g.YMin)/g.CellSize)
	col = clamp(col, 0, g.Cols-1)
	row = clamp(row, 0, g.Rows-1)

	v := g.value(col, row)
	if v == g.NoData {
		return 0, false
	}
	return v, true
}

func (g *Grid) sampleBilinear(x, y float64) (float64, bool) {
	// Work in cell-centre coordinates.
	fx := (x-g.XMin)/g.CellSize - 0.5
	fy := (g.YMin+float64(g.Rows)*g.CellSize-y)/g.CellSize - 0.5

	c0 := clamp(int(math.Floor(fx)), 0, g.Cols-1)
	r0 := clamp(int(math.Floor(fy)), 0, g.Rows-1)
	c1 := clamp(c0+1, 0, g.Cols-1)
	r1 := clamp(r0+1, 0, g.Rows-1)

	tx := clampF(fx-float64(c0), 0, 1)
	ty := clampF(fy-float64(r0), 0, 1)

	v00 := g.value(c0, r0)
	v10 := g.value(c1, r0)
	v01 := g.value(c0, r1)
	v11 := g.value(c1, r1)
	if v00 == g.NoData || v10 == g.NoData || v01 == g.NoData || v11 == g.NoData {
		// Any no-data corner degrades to nearest so holes never leak into
		// interpolated values.
		return g.sampleNearest(x, y)
	}

	top := v00*(1-tx) + v10*tx
	bottom := v01*(1-tx) + v11*tx
	return top*(1-ty) + bottom*ty, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
