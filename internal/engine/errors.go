// Package engine implements the hazard/exposure overlay pipeline: hazard
// interpolation, classification, quantity redistribution, statistics and
// report/style building.
package engine

import "fmt"

// ConfigurationError reports invalid run configuration: a missing required
// field, non-increasing thresholds or unsupported geometry. Always fatal.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: field %q: %s", e.Field, e.Reason)
}

// SpatialConsistencyError reports a feature matched by more than one hazard
// polygon. Overlapping hazard polygons are a data error, never resolved
// silently.
type SpatialConsistencyError struct {
	FeatureID string
	Field     string
}

func (e *SpatialConsistencyError) Error() string {
	return fmt.Sprintf("spatial consistency error: feature %q already has a %q assignment; hazard polygons overlap", e.FeatureID, e.Field)
}

// NumericError reports an invalid numeric input, such as a non-positive area
// in density computation. Fatal for the whole run.
type NumericError struct {
	FeatureID string
	Field     string
	Value     float64
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("numeric error: feature %q field %q has invalid value %g", e.FeatureID, e.Field, e.Value)
}
