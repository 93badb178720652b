package engine

import (
	"github.com/geosafe/impact-cli/internal/geometry"
	"github.com/geosafe/impact-cli/internal/layer"
)

// DensityField is the intermediate attribute holding count per unit area.
const DensityField = "density"

// AddDensity converts the absolute count attribute into a density
// (count / area) stored under DensityField. A non-positive area is a
// NumericError and fails the whole run.
func AddDensity(l *layer.Layer, countField, areaField, idField string) error {
	if !l.HasAttribute(countField) {
		return &ConfigurationError{Field: countField, Reason: "missing from exposure schema"}
	}
	if !l.HasAttribute(areaField) {
		return &ConfigurationError{Field: areaField, Reason: "missing from exposure schema"}
	}

	l.AddAttribute(DensityField)
	for _, att := range l.Data {
		count, err := att.Float(countField)
		if err != nil {
			return &ConfigurationError{Field: countField, Reason: err.Error()}
		}
		area, err := att.Float(areaField)
		if err != nil {
			return &ConfigurationError{Field: areaField, Reason: err.Error()}
		}
		if area <= 0 {
			return &NumericError{FeatureID: att.String(idField), Field: areaField, Value: area}
		}
		att[DensityField] = count / area
	}
	return nil
}

// ApplyDensity recomputes outputField as density times the current area
// attribute, redistributing the quantity across geometry that may have
// changed between the two stages. Returns the maximum output value observed,
// for style ramp scaling.
func ApplyDensity(l *layer.Layer, areaField, outputField, idField string) (float64, error) {
	if !l.HasAttribute(DensityField) {
		return 0, &ConfigurationError{Field: DensityField, Reason: "AddDensity must run before ApplyDensity"}
	}

	l.AddAttribute(outputField)
	var maxValue float64
	for _, att := range l.Data {
		density, err := att.Float(DensityField)
		if err != nil {
			return 0, &ConfigurationError{Field: DensityField, Reason: err.Error()}
		}
		area, err := att.Float(areaField)
		if err != nil {
			return 0, &ConfigurationError{Field: areaField, Reason: err.Error()}
		}
		if area <= 0 {
			return 0, &NumericError{FeatureID: att.String(idField), Field: areaField, Value: area}
		}

		out := density * area
		att[outputField] = out
		if out > maxValue {
			maxValue = out
		}
	}
	return maxValue, nil
}

// RecomputeAreas rewrites the area attribute from the layer's current
// polygon geometry. Call it between AddDensity and ApplyDensity when the
// geometry was modified, e.g. after deintersection.
func RecomputeAreas(l *layer.Layer, areaField string) error {
	if !l.HasAttribute(areaField) {
		l.AddAttribute(areaField)
	}
	for i, att := range l.Data {
		ring, err := l.OuterRing(i)
		if err != nil {
			return &ConfigurationError{Reason: err.Error()}
		}
		att[areaField] = geometry.RingArea(ring)
	}
	return nil
}
