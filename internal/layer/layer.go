// Package layer holds the in-memory vector layer model consumed by the
// overlay engine: parallel attribute and geometry sequences with a declared,
// homogeneous schema.
package layer

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// Attributes is one feature's attribute record. Keys are constrained to the
// owning layer's schema.
type Attributes map[string]any

// Float reads a numeric attribute, coercing the value types that show up
// after shapefile or YAML loading.
func (a Attributes) Float(key string) (float64, error) {
	v, ok := a[key]
	if !ok {
		return 0, eris.Errorf("layer: attribute %q not set", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, eris.Wrapf(err, "layer: attribute %q is not numeric", key)
		}
		return f, nil
	default:
		return 0, eris.Errorf("layer: attribute %q has non-numeric type %T", key, v)
	}
}

// Int reads an attribute as an integer class code.
func (a Attributes) Int(key string) (int, error) {
	f, err := a.Float(key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// String reads an attribute as its string form.
func (a Attributes) String(key string) string {
	v, ok := a[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// StyleClass describes one entry of a categorical style.
type StyleClass struct {
	Label        string  `yaml:"label"`
	Value        int     `yaml:"value"`
	Colour       string  `yaml:"colour"`
	Transparency float64 `yaml:"transparency"`
	Size         float64 `yaml:"size"`
}

// StyleInfo is the style descriptor attached to a produced impact layer.
// Rendering it is the host's concern.
type StyleInfo struct {
	TargetField  string       `yaml:"target_field"`
	StyleClasses []StyleClass `yaml:"style_classes"`
	StyleType    string       `yaml:"style_type"`
}

// Layer is an ordered sequence of features with a homogeneous attribute
// schema. Data and Geometry are parallel slices.
type Layer struct {
	Name       string
	Projection string
	Schema     []string
	Data       []Attributes
	Geometry   []geom.T
	Keywords   map[string]any
	StyleInfo  *StyleInfo
}

// New builds a layer and validates the invariants the engine relies on:
// parallel data/geometry lengths and every record carrying exactly the
// declared schema.
func New(name string, schema []string, data []Attributes, geometry []geom.T) (*Layer, error) {
	if len(data) != len(geometry) {
		return nil, eris.Errorf("layer: %s has %d attribute records but %d geometries", name, len(data), len(geometry))
	}
	declared := make(map[string]bool, len(schema))
	for _, f := range schema {
		declared[f] = true
	}
	for i, att := range data {
		for _, f := range schema {
			if _, ok := att[f]; !ok {
				return nil, eris.Errorf("layer: %s feature %d missing declared attribute %q", name, i, f)
			}
		}
		for k := range att {
			if !declared[k] {
				return nil, eris.Errorf("layer: %s feature %d carries undeclared attribute %q", name, i, k)
			}
		}
	}
	return &Layer{
		Name:     name,
		Schema:   append([]string(nil), schema...),
		Data:     data,
		Geometry: geometry,
		Keywords: map[string]any{},
	}, nil
}

// GetData returns the ordered attribute records.
func (l *Layer) GetData() []Attributes { return l.Data }

// GetGeometry returns the ordered geometries, parallel to GetData.
func (l *Layer) GetGeometry() []geom.T { return l.Geometry }

// GetAttributeNames returns the declared schema.
func (l *Layer) GetAttributeNames() []string { return l.Schema }

// GetKeywords returns the layer metadata mapping.
func (l *Layer) GetKeywords() map[string]any { return l.Keywords }

// GetProjection returns the layer projection string.
func (l *Layer) GetProjection() string { return l.Projection }

// Len returns the feature count.
func (l *Layer) Len() int { return len(l.Data) }

// HasAttribute reports whether name is part of the declared schema.
func (l *Layer) HasAttribute(name string) bool {
	for _, f := range l.Schema {
		if f == name {
			return true
		}
	}
	return false
}

// Copy returns a working copy with deep-copied attributes and keywords.
// Geometries are shared; the engine never mutates geometry in place.
func (l *Layer) Copy() *Layer {
	data := make([]Attributes, len(l.Data))
	for i, att := range l.Data {
		cp := make(Attributes, len(att))
		for k, v := range att {
			cp[k] = v
		}
		data[i] = cp
	}
	keywords := make(map[string]any, len(l.Keywords))
	for k, v := range l.Keywords {
		keywords[k] = v
	}
	return &Layer{
		Name:       l.Name,
		Projection: l.Projection,
		Schema:     append([]string(nil), l.Schema...),
		Data:       data,
		Geometry:   append([]geom.T(nil), l.Geometry...),
		Keywords:   keywords,
		StyleInfo:  l.StyleInfo,
	}
}

// AddAttribute extends the schema with a new field; existing records must be
// populated by the caller immediately after.
func (l *Layer) AddAttribute(name string) {
	if !l.HasAttribute(name) {
		l.Schema = append(l.Schema, name)
	}
}

// OuterRing extracts the outer ring of the feature at index i.
// Returns an error for non-polygon geometry or polygons with holes, which
// the engine does not support.
func (l *Layer) OuterRing(i int) ([]geom.Coord, error) {
	switch g := l.Geometry[i].(type) {
	case *geom.Polygon:
		if g.NumLinearRings() > 1 {
			return nil, eris.Errorf("layer: %s feature %d is a polygon with holes", l.Name, i)
		}
		return g.LinearRing(0).Coords(), nil
	default:
		return nil, eris.Errorf("layer: %s feature %d is not a polygon (%T)", l.Name, i, l.Geometry[i])
	}
}
