package layer

import (
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// LoadShapefile reads a point or polygon shapefile into a Layer. DBF field
// names become the schema; numeric-looking attribute values are parsed to
// float64, everything else stays a string.
func LoadShapefile(path, name string) (*Layer, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "layer: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	schema := make([]string, len(fields))
	for i, f := range fields {
		schema[i] = strings.ToLower(strings.TrimRight(f.String(), "\x00"))
	}

	var data []Attributes
	var geoms []geom.T
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		g := shapeToGeom(shape)
		if g == nil {
			skipped++
			continue
		}

		att := make(Attributes, len(schema))
		for i, fieldName := range schema {
			raw := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if f, convErr := strconv.ParseFloat(raw, 64); convErr == nil {
				att[fieldName] = f
			} else {
				att[fieldName] = raw
			}
		}

		data = append(data, att)
		geoms = append(geoms, g)
	}

	if skipped > 0 {
		zap.L().Debug("layer: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return New(name, schema, data, geoms)
}

// shapeToGeom converts a go-shp shape to the go-geom type the engine uses.
// Returns nil for unsupported or empty shapes.
func shapeToGeom(shape shp.Shape) geom.T {
	switch s := shape.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y})
	case *shp.Polygon:
		return polygonShapeToGeom(s)
	default:
		return nil
	}
}

// polygonShapeToGeom keeps every part as a ring so downstream validation can
// reject polygons with holes instead of silently discarding them.
func polygonShapeToGeom(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	poly := geom.NewPolygon(geom.XY)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			zap.L().Debug("layer: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if poly.NumLinearRings() == 0 {
		return nil
	}
	return poly
}

// SaveShapefile writes the layer to a point or polygon shapefile. Numeric
// attributes become float fields, everything else string fields, keyed by
// the first feature's value types.
func SaveShapefile(l *Layer, path string) error {
	if l.Len() == 0 {
		return eris.Errorf("layer: refusing to write empty layer %s", l.Name)
	}

	var shapeType shp.ShapeType = shp.POLYGON
	if _, ok := l.Geometry[0].(*geom.Point); ok {
		shapeType = shp.POINT
	}

	writer, err := shp.Create(path, shapeType)
	if err != nil {
		return eris.Wrapf(err, "layer: create shapefile %s", path)
	}
	defer writer.Close()

	fields := make([]shp.Field, len(l.Schema))
	numeric := make([]bool, len(l.Schema))
	for i, name := range l.Schema {
		if _, err := l.Data[0].Float(name); err == nil {
			fields[i] = shp.FloatField(name, 24, 6)
			numeric[i] = true
		} else {
			fields[i] = shp.StringField(name, 64)
		}
	}
	writer.SetFields(fields)

	for row := range l.Data {
		shape, convErr := geomToShape(l.Geometry[row])
		if convErr != nil {
			return eris.Wrapf(convErr, "layer: write %s feature %d", l.Name, row)
		}
		writer.Write(shape)

		for col, fieldName := range l.Schema {
			var value any
			if numeric[col] {
				value, _ = l.Data[row].Float(fieldName)
			} else {
				value = l.Data[row].String(fieldName)
			}
			if err := writer.WriteAttribute(row, col, value); err != nil {
				return eris.Wrapf(err, "layer: write attribute %q feature %d", fieldName, row)
			}
		}
	}

	return nil
}

func geomToShape(g geom.T) (shp.Shape, error) {
	switch t := g.(type) {
	case *geom.Point:
		return &shp.Point{X: t.X(), Y: t.Y()}, nil
	case *geom.Polygon:
		parts := make([][]shp.Point, t.NumLinearRings())
		for i := 0; i < t.NumLinearRings(); i++ {
			coords := t.LinearRing(i).Coords()
			pts := make([]shp.Point, len(coords))
			for j, c := range coords {
				pts[j] = shp.Point{X: c[0], Y: c[1]}
			}
			parts[i] = pts
		}
		poly := shp.Polygon(*shp.NewPolyLine(parts))
		return &poly, nil
	default:
		return nil, eris.Errorf("layer: unsupported geometry type %T", g)
	}
}
