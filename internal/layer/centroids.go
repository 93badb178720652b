package layer

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/geosafe/impact-cli/internal/geometry"
)

// ToCentroids converts every polygon feature to its representative point.
// Attributes are carried over unchanged; only geometry changes. Point
// features pass through as-is. Fails on rings with fewer than 3 vertices.
func ToCentroids(l *Layer) (*Layer, error) {
	out := l.Copy()
	points := make([]geom.T, len(l.Geometry))

	for i := range l.Geometry {
		if pt, ok := l.Geometry[i].(*geom.Point); ok {
			points[i] = pt
			continue
		}
		ring, err := l.OuterRing(i)
		if err != nil {
			return nil, err
		}
		c, err := geometry.Centroid(ring)
		if err != nil {
			return nil, eris.Wrapf(err, "layer: centroid of %s feature %d", l.Name, i)
		}
		points[i] = geom.NewPointFlat(geom.XY, []float64{c[0], c[1]})
	}

	out.Geometry = points
	return out, nil
}

// RepresentativePoint returns the location used for spatial assignment of
// the feature at index i: the point itself, or the polygon centroid.
func (l *Layer) RepresentativePoint(i int) (geom.Coord, error) {
	if pt, ok := l.Geometry[i].(*geom.Point); ok {
		return geom.Coord{pt.X(), pt.Y()}, nil
	}
	ring, err := l.OuterRing(i)
	if err != nil {
		return nil, err
	}
	c, err := geometry.Centroid(ring)
	if err != nil {
		return nil, eris.Wrapf(err, "layer: representative point of %s feature %d", l.Name, i)
	}
	return c, nil
}
