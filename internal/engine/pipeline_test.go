package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/geosafe/impact-cli/internal/layer"
	"github.com/geosafe/impact-cli/internal/raster"
)

func TestRunCategoryMode(t *testing.T) {
	hazard, exposure := categoryFixture(t)
	exposure.Keywords = map[string]any{
		"title":         "Population census",
		"exposure_type": "population",
		"map_title":     "stale title from a previous run",
	}

	opts := Options{
		IDField:     "id",
		CountField:  "pop",
		AreaField:   "area",
		TargetField: "haz_level",
		Classes:     DefaultCategoryClasses(),
		Title:       "People affected by volcano hazard",
	}

	result, err := Run(CategoryMode{Hazard: hazard, CategoryField: "haz_level"}, exposure, opts)
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)

	// f1 sits inside the category-2 polygon; f2 matches nothing.
	c0, err := result.Impact.Data[0].Int("haz_level")
	require.NoError(t, err)
	assert.Equal(t, 2, c0)
	c1, err := result.Impact.Data[1].Int("haz_level")
	require.NoError(t, err)
	assert.Equal(t, NoDataCode, c1)

	// Counts survive the density round trip.
	assert.Equal(t, map[int]float64{NoDataCode: 0, 0: 0, 1: 0, 2: 100, 3: 0}, result.Stats.Rows["f1"])
	assert.Equal(t, map[int]float64{NoDataCode: 50, 0: 0, 1: 0, 2: 0, 3: 0}, result.Stats.Rows["f2"])
	assert.InDelta(t, 100.0, result.MaxValue, 1e-9)

	assert.Equal(t, "People affected by volcano hazard", result.Report.Title)
	assert.Contains(t, result.Report.Summary, "Medium: 100")

	// Exposure keywords carry over; impact keywords win on collision so the
	// output always describes this run.
	kw := result.Impact.Keywords
	assert.Equal(t, "Population census", kw["title"])
	assert.Equal(t, "population", kw["exposure_type"])
	assert.Equal(t, "People affected by volcano hazard", kw["map_title"])
	assert.Equal(t, result.Report.Summary, kw["impact_summary"])
	assert.Equal(t, result.Report, kw["impact_table"])
	assert.Equal(t, "People affected by volcano hazard", kw["map_title"])
	assert.Equal(t, "haz_level", kw["target_field"])
	assert.Equal(t, "class_count", kw["statistics_type"])
	assert.Equal(t, []int{NoDataCode, 0, 1, 2, 3}, kw["statistics_classes"])

	// Style targets the classification field.
	assert.Equal(t, "haz_level", result.Impact.StyleInfo.TargetField)
	assert.Equal(t, CategorisedStyleType, result.Impact.StyleInfo.StyleType)

	// The input layer is never mutated.
	assert.False(t, exposure.HasAttribute("haz_level"))
	assert.False(t, exposure.HasAttribute(DensityField))
	assert.NotContains(t, exposure.Keywords, "impact_summary")
}

func TestRunThresholdMode(t *testing.T) {
	exposure, err := layer.New("buildings", []string{"id"},
		[]layer.Attributes{
			{"id": "b1"},
			{"id": "b2"},
			{"id": "b3"},
		},
		[]geom.T{
			geom.NewPointFlat(geom.XY, []float64{1.5, 0.5}), // depth 2.5 → class 4
			geom.NewPointFlat(geom.XY, []float64{0.5, 1.5}), // depth 0.5 → class 2
			geom.NewPointFlat(geom.XY, []float64{9, 9}),     // outside → sentinel
		},
	)
	require.NoError(t, err)

	thresholds := []float64{0.2, 1.0, 1.5, 2.0}
	mode := ThresholdMode{Grid: depthGrid(), Thresholds: thresholds, Interpolation: raster.Nearest}
	opts := Options{
		IDField:     "id",
		TargetField: "haz_level",
		Classes:     InundationClasses(thresholds),
		Title:       "Buildings inundated",
	}

	result, err := Run(mode, exposure, opts)
	require.NoError(t, err)

	expected := []int{4, 2, NoDataCode}
	for i, want := range expected {
		got, err := result.Impact.Data[i].Int("haz_level")
		require.NoError(t, err)
		assert.Equal(t, want, got, "feature %d", i)
	}

	// Empty CountField counts each feature once.
	assert.Equal(t, 1.0, result.Stats.Rows["b1"][4])
	assert.Equal(t, 1.0, result.Stats.Rows["b2"][2])
	assert.Equal(t, 1.0, result.Stats.Rows["b3"][NoDataCode])
	assert.InDelta(t, 1.0, result.MaxValue, 1e-9)

	// The working depth attribute stays on the impact layer.
	assert.True(t, result.Impact.HasAttribute(HazardValueField))
	assert.False(t, exposure.HasAttribute(HazardValueField))
}

func TestRunSingleThresholdMode(t *testing.T) {
	exposure, err := layer.New("buildings", []string{"id"},
		[]layer.Attributes{
			{"id": "b1"},
			{"id": "b2"},
			{"id": "b3"},
			{"id": "b4"},
		},
		[]geom.T{
			geom.NewPointFlat(geom.XY, []float64{1.5, 0.5}), // depth 2.5 → flooded
			geom.NewPointFlat(geom.XY, []float64{0.5, 1.5}), // depth 0.5 → wet
			geom.NewPointFlat(geom.XY, []float64{0.5, 0.5}), // depth 0.0 → dry
			geom.NewPointFlat(geom.XY, []float64{9, 9}),     // outside → sentinel
		},
	)
	require.NoError(t, err)

	mode := SingleThresholdMode{Grid: depthGrid(), Threshold: 1.0, Interpolation: raster.Nearest}
	opts := Options{
		IDField:     "id",
		TargetField: "affected",
		Classes:     SingleThresholdClasses(1.0),
		Title:       "Buildings flooded",
	}

	result, err := Run(mode, exposure, opts)
	require.NoError(t, err)

	expected := []int{1, 2, 0, NoDataCode}
	for i, want := range expected {
		got, err := result.Impact.Data[i].Int("affected")
		require.NoError(t, err)
		assert.Equal(t, want, got, "feature %d", i)
	}

	// Fixed dry/flooded/wet colours survive into the style.
	byValue := map[int]string{}
	for _, sc := range result.Impact.StyleInfo.StyleClasses {
		byValue[sc.Value] = sc.Colour
	}
	assert.Equal(t, "#1EFC7C", byValue[0])
	assert.Equal(t, "#F31A1C", byValue[1])
	assert.Equal(t, "#FF9900", byValue[2])
}

func TestRunValidation(t *testing.T) {
	hazard, exposure := categoryFixture(t)
	mode := CategoryMode{Hazard: hazard, CategoryField: "haz_level"}

	tests := []struct {
		name string
		opts Options
	}{
		{
			name: "missing id field",
			opts: Options{IDField: "missing", TargetField: "haz_level", Classes: DefaultCategoryClasses()},
		},
		{
			name: "empty id field",
			opts: Options{TargetField: "haz_level", Classes: DefaultCategoryClasses()},
		},
		{
			name: "no classes",
			opts: Options{IDField: "id", TargetField: "haz_level"},
		},
		{
			name: "duplicate class codes",
			opts: Options{IDField: "id", TargetField: "haz_level",
				Classes: []HazardClass{{Code: 1, Label: "a"}, {Code: 1, Label: "b"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfgErr *ConfigurationError
			_, err := Run(mode, exposure, tt.opts)
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestRunThresholdModeBadThresholds(t *testing.T) {
	exposure, err := layer.New("buildings", []string{"id"},
		[]layer.Attributes{{"id": "b1"}},
		[]geom.T{geom.NewPointFlat(geom.XY, []float64{0.5, 0.5})},
	)
	require.NoError(t, err)

	mode := ThresholdMode{Grid: depthGrid(), Thresholds: []float64{1.0, 0.2}, Interpolation: raster.Nearest}
	opts := Options{
		IDField:     "id",
		TargetField: "haz_level",
		Classes:     InundationClasses([]float64{1.0, 0.2}),
		Title:       "t",
	}

	var cfgErr *ConfigurationError
	_, err = Run(mode, exposure, opts)
	require.ErrorAs(t, err, &cfgErr)
}
