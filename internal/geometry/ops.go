// Package geometry provides the planar predicates the overlay engine needs:
// point-in-polygon membership, ring area, and representative points.
package geometry

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// onEdgeEpsilon bounds the cross-product test for a point lying on a segment.
const onEdgeEpsilon = 1e-12

// PointInPolygon reports whether pt lies inside the polygon described by ring.
// The ring is a single outer boundary, ordered, and need not be closed.
// A point exactly on the boundary counts as inside.
func PointInPolygon(pt geom.Coord, ring []geom.Coord) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := ring[j], ring[i]

		if onSegment(pt, a, b) {
			return true
		}

		// Ray casting: count edges crossed by a horizontal ray to the right.
		if (a[1] > pt[1]) != (b[1] > pt[1]) {
			x := a[0] + (pt[1]-a[1])/(b[1]-a[1])*(b[0]-a[0])
			if pt[0] < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// onSegment reports whether pt lies on the segment a-b.
func onSegment(pt, a, b geom.Coord) bool {
	cross := (b[0]-a[0])*(pt[1]-a[1]) - (b[1]-a[1])*(pt[0]-a[0])
	if cross > onEdgeEpsilon || cross < -onEdgeEpsilon {
		return false
	}
	if pt[0] < min(a[0], b[0]) || pt[0] > max(a[0], b[0]) {
		return false
	}
	if pt[1] < min(a[1], b[1]) || pt[1] > max(a[1], b[1]) {
		return false
	}
	return true
}

// Centroid returns the representative point for a polygon ring.
//
// The contract is the area-weighted centroid computed with the shoelace
// formula. Degenerate rings with zero signed area fall back to the mean of
// the vertices. Rings with fewer than 3 vertices are an error.
func Centroid(ring []geom.Coord) (geom.Coord, error) {
	ring = dropClosingVertex(ring)
	if len(ring) < 3 {
		return nil, eris.Errorf("geometry: centroid needs at least 3 vertices, got %d", len(ring))
	}

	var signed, cx, cy float64
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		a, b := ring[j], ring[i]
		w := a[0]*b[1] - b[0]*a[1]
		signed += w
		cx += (a[0] + b[0]) * w
		cy += (a[1] + b[1]) * w
		j = i
	}

	if signed > -onEdgeEpsilon && signed < onEdgeEpsilon {
		// Zero-area ring: vertex mean.
		var sx, sy float64
		for _, c := range ring {
			sx += c[0]
			sy += c[1]
		}
		n := float64(len(ring))
		return geom.Coord{sx / n, sy / n}, nil
	}

	return geom.Coord{cx / (3 * signed), cy / (3 * signed)}, nil
}

// RingArea returns the absolute planar area enclosed by ring.
func RingArea(ring []geom.Coord) float64 {
	ring = dropClosingVertex(ring)
	if len(ring) < 3 {
		return 0
	}
	var signed float64
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		signed += ring[j][0]*ring[i][1] - ring[i][0]*ring[j][1]
		j = i
	}
	if signed < 0 {
		signed = -signed
	}
	return signed / 2
}

// dropClosingVertex removes a duplicated final vertex so closed and open
// rings are treated uniformly.
func dropClosingVertex(ring []geom.Coord) []geom.Coord {
	n := len(ring)
	if n > 1 && ring[0][0] == ring[n-1][0] && ring[0][1] == ring[n-1][1] {
		return ring[:n-1]
	}
	return ring
}
