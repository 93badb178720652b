package engine

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geosafe/impact-cli/internal/layer"
	"github.com/geosafe/impact-cli/internal/raster"
)

// Mode is the tagged classification variant, dispatched once per run.
type Mode interface {
	isMode()
}

// CategoryMode classifies by spatial assignment of categorical hazard
// polygons to exposure centroids.
type CategoryMode struct {
	Hazard        *layer.Layer
	CategoryField string
}

func (CategoryMode) isMode() {}

// ThresholdMode classifies a continuous raster hazard against ordered
// multi-level thresholds.
type ThresholdMode struct {
	Grid          *raster.Grid
	Thresholds    []float64
	Interpolation raster.Method
}

func (ThresholdMode) isMode() {}

// SingleThresholdMode classifies a continuous raster hazard into the
// dry/flooded/wet coding around one threshold.
type SingleThresholdMode struct {
	Grid          *raster.Grid
	Threshold     float64
	Interpolation raster.Method
}

func (SingleThresholdMode) isMode() {}

// HazardValueField is the working attribute holding the interpolated
// continuous hazard value.
const HazardValueField = "depth"

// Options is the immutable per-run configuration, constructed once from
// declared defaults plus overrides.
type Options struct {
	IDField     string
	CountField  string // absolute quantity attribute; empty counts features
	AreaField   string // required for density redistribution; empty skips it
	TargetField string
	Classes     []HazardClass
	Title       string
}

// Result is the output of one impact run.
type Result struct {
	RunID    string
	Impact   *layer.Layer
	Stats    *Table
	Report   *Report
	MaxValue float64
}

// Run executes the overlay pipeline: spatial assignment or interpolation,
// classification, quantity redistribution, aggregation and report/style
// building. The input exposure layer is never mutated; all work happens on
// a copy. Errors abort the run; there are no partial results.
func Run(mode Mode, exposure *layer.Layer, opts Options) (*Result, error) {
	runID := uuid.New().String()
	log := zap.L().With(zap.String("run_id", runID))

	if err := ValidateClasses(opts.Classes); err != nil {
		return nil, err
	}
	if opts.IDField == "" || !exposure.HasAttribute(opts.IDField) {
		return nil, &ConfigurationError{Field: opts.IDField, Reason: "id field missing from exposure schema"}
	}

	working, err := classifyByMode(mode, exposure, opts)
	if err != nil {
		return nil, err
	}

	countField := opts.CountField
	if countField == "" {
		// No quantity attribute: count each feature once.
		countField = "count"
		working.AddAttribute(countField)
		for _, att := range working.Data {
			att[countField] = 1.0
		}
	}

	var maxValue float64
	if opts.AreaField != "" {
		if err := AddDensity(working, countField, opts.AreaField, opts.IDField); err != nil {
			return nil, err
		}
		maxValue, err = ApplyDensity(working, opts.AreaField, countField, opts.IDField)
		if err != nil {
			return nil, err
		}
	} else {
		for _, att := range working.Data {
			v, convErr := att.Float(countField)
			if convErr != nil {
				return nil, &ConfigurationError{Field: countField, Reason: convErr.Error()}
			}
			if v > maxValue {
				maxValue = v
			}
		}
	}

	stats, err := Aggregate(working, opts.IDField, opts.TargetField, countField, opts.Classes)
	if err != nil {
		return nil, err
	}

	report := BuildReport(stats, opts.Classes, opts.IDField, opts.Title)
	working.StyleInfo = BuildStyle(opts.TargetField, opts.Classes)

	classCodes := make([]int, len(opts.Classes))
	for i, c := range opts.Classes {
		classCodes[i] = c.Code
	}

	// Exposure keywords carry over; impact keywords win on collision.
	keywords := map[string]any{}
	for k, v := range exposure.Keywords {
		keywords[k] = v
	}
	keywords["impact_summary"] = report.Summary
	keywords["impact_table"] = report
	keywords["map_title"] = report.Title
	keywords["target_field"] = opts.TargetField
	keywords["statistics_type"] = "class_count"
	keywords["statistics_classes"] = classCodes
	working.Keywords = keywords

	log.Info("engine: impact run complete",
		zap.String("mode", modeName(mode)),
		zap.Int("features", working.Len()),
		zap.Int("groups", len(stats.Groups)),
		zap.Float64("max_value", maxValue),
	)

	return &Result{
		RunID:    runID,
		Impact:   working,
		Stats:    stats,
		Report:   report,
		MaxValue: maxValue,
	}, nil
}

// classifyByMode dispatches the tagged classification variant and returns
// the classified working layer.
func classifyByMode(mode Mode, exposure *layer.Layer, opts Options) (*layer.Layer, error) {
	switch m := mode.(type) {
	case CategoryMode:
		working := exposure.Copy()
		if err := AssignCategories(working, m.Hazard, m.CategoryField, opts.TargetField, opts.IDField); err != nil {
			return nil, err
		}
		return working, nil

	case ThresholdMode:
		if err := ValidateThresholds(m.Thresholds); err != nil {
			return nil, err
		}
		working, err := AssignHazardValues(m.Grid, exposure, HazardValueField, m.Interpolation)
		if err != nil {
			return nil, err
		}
		if err := ClassifyThresholds(working, HazardValueField, opts.TargetField, m.Thresholds); err != nil {
			return nil, err
		}
		return working, nil

	case SingleThresholdMode:
		working, err := AssignHazardValues(m.Grid, exposure, HazardValueField, m.Interpolation)
		if err != nil {
			return nil, err
		}
		working.AddAttribute(opts.TargetField)
		for _, att := range working.Data {
			v, convErr := att.Float(HazardValueField)
			if convErr != nil {
				return nil, &ConfigurationError{Field: HazardValueField, Reason: convErr.Error()}
			}
			if v == NoDataCode {
				att[opts.TargetField] = NoDataCode
				continue
			}
			att[opts.TargetField] = ClassifySingle(v, m.Threshold)
		}
		return working, nil

	default:
		return nil, &ConfigurationError{Reason: "unknown classification mode"}
	}
}

func modeName(mode Mode) string {
	switch mode.(type) {
	case CategoryMode:
		return "category"
	case ThresholdMode:
		return "threshold"
	case SingleThresholdMode:
		return "single_threshold"
	default:
		return "unknown"
	}
}
