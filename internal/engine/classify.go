package engine

import (
	"go.uber.org/zap"

	"github.com/geosafe/impact-cli/internal/geometry"
	"github.com/geosafe/impact-cli/internal/layer"
)

// NoDataCode is the sentinel class code for features with no hazard
// information. It is distinct from class 0 (no impact) and flows through
// statistics as its own bucket.
const NoDataCode = -9999

// NoDataLabel is the display label for the sentinel class.
const NoDataLabel = "No Data"

// HazardClass is one entry of the ordered impact class set.
type HazardClass struct {
	Code   int
	Label  string
	Colour string
}

// ValidateClasses checks the class set invariants: at least one class,
// strictly increasing codes and unique labels.
func ValidateClasses(classes []HazardClass) error {
	if len(classes) == 0 {
		return &ConfigurationError{Reason: "empty hazard class set"}
	}
	labels := make(map[string]bool, len(classes))
	for i, c := range classes {
		if i > 0 && c.Code <= classes[i-1].Code {
			return &ConfigurationError{Reason: "hazard class codes must be strictly increasing"}
		}
		if labels[c.Label] {
			return &ConfigurationError{Reason: "duplicate hazard class label " + c.Label}
		}
		labels[c.Label] = true
	}
	return nil
}

// ValidateThresholds rejects threshold sets that tie or invert.
func ValidateThresholds(thresholds []float64) error {
	if len(thresholds) == 0 {
		return &ConfigurationError{Reason: "empty threshold set"}
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return &ConfigurationError{Reason: "thresholds must be strictly increasing"}
		}
	}
	return nil
}

// ClassifyValue maps a continuous hazard value onto n+1 classes using n
// ordered thresholds:
//
//	v <= 0        → 0
//	0 < v <= t1   → 1
//	...
//	v > tn        → n
//
// Boundary values belong to the lower class.
func ClassifyValue(v float64, thresholds []float64) int {
	if v <= 0 {
		return 0
	}
	for i, t := range thresholds {
		if v <= t {
			return i + 1
		}
	}
	return len(thresholds)
}

// ClassifySingle maps a depth onto the original dry/flooded/wet coding used
// by the single-threshold flood function: 0 dry, 1 flooded (>= threshold),
// 2 wet (between 0 and the threshold).
func ClassifySingle(v, threshold float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= threshold:
		return 1
	default:
		return 2
	}
}

// ClassifyThresholds writes the threshold class of valueField into
// targetField for every feature of the working layer. The sentinel value of
// valueField stays the sentinel class.
func ClassifyThresholds(l *layer.Layer, valueField, targetField string, thresholds []float64) error {
	if err := ValidateThresholds(thresholds); err != nil {
		return err
	}
	if !l.HasAttribute(valueField) {
		return &ConfigurationError{Field: valueField, Reason: "missing from exposure schema"}
	}

	l.AddAttribute(targetField)
	for _, att := range l.Data {
		v, err := att.Float(valueField)
		if err != nil {
			return &ConfigurationError{Field: valueField, Reason: err.Error()}
		}
		if v == NoDataCode {
			att[targetField] = NoDataCode
			continue
		}
		att[targetField] = ClassifyValue(v, thresholds)
	}
	return nil
}

// AssignCategories assigns each hazard polygon's category code to every
// exposure feature whose representative point lies inside it, writing the
// result into targetField of the working layer.
//
// Invariant: a feature receives at most one non-sentinel assignment. A
// second match means the hazard polygons overlap and the run aborts with a
// SpatialConsistencyError naming the feature. Unmatched features keep the
// sentinel.
func AssignCategories(impact, hazard *layer.Layer, categoryField, targetField, idField string) error {
	if !hazard.HasAttribute(categoryField) {
		return &ConfigurationError{Field: categoryField, Reason: "missing from hazard schema"}
	}
	if !impact.HasAttribute(idField) {
		return &ConfigurationError{Field: idField, Reason: "missing from exposure schema"}
	}

	centroids := make([][2]float64, impact.Len())
	for i := range impact.Data {
		pt, err := impact.RepresentativePoint(i)
		if err != nil {
			return &ConfigurationError{Reason: err.Error()}
		}
		centroids[i] = [2]float64{pt[0], pt[1]}
	}

	impact.AddAttribute(targetField)
	for _, att := range impact.Data {
		att[targetField] = NoDataCode
	}

	for h := range hazard.Data {
		ring, err := hazard.OuterRing(h)
		if err != nil {
			return &ConfigurationError{Reason: err.Error()}
		}
		level, err := hazard.Data[h].Int(categoryField)
		if err != nil {
			return &ConfigurationError{Field: categoryField, Reason: err.Error()}
		}

		for i, att := range impact.Data {
			if !geometry.PointInPolygon([]float64{centroids[i][0], centroids[i][1]}, ring) {
				continue
			}
			if existing, _ := att.Int(targetField); existing != NoDataCode {
				return &SpatialConsistencyError{
					FeatureID: att.String(idField),
					Field:     targetField,
				}
			}
			att[targetField] = level
		}
	}

	assigned := 0
	for _, att := range impact.Data {
		if code, _ := att.Int(targetField); code != NoDataCode {
			assigned++
		}
	}
	zap.L().Debug("engine: assigned hazard categories",
		zap.String("target_field", targetField),
		zap.Int("features", impact.Len()),
		zap.Int("assigned", assigned),
	)
	return nil
}
