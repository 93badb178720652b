package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrictlyIncreasing(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{"ordered", []float64{0.2, 1.0, 1.5, 2.0}, false},
		{"single value", []float64{1.0}, false},
		{"empty", nil, false},
		{"tie", []float64{0.2, 0.2, 1.0}, true},
		{"inverted", []float64{1.0, 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := make([]Float, len(tt.values))
			for i, v := range tt.values {
				ps[i] = Float{Value: v}
			}
			err := StrictlyIncreasing(ps)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInundationThresholdsDefaults(t *testing.T) {
	group := InundationThresholds()

	assert.Equal(t, []float64{0.2, 1.0, 1.5, 2.0}, group.Values())
	require.NoError(t, group.Validate())

	for _, p := range group.Params {
		assert.True(t, p.IsRequired)
		assert.Equal(t, "metres", p.Unit)
		assert.Equal(t, 2, p.Precision)
	}
}

func TestGroupValidatorRejectsUnordered(t *testing.T) {
	group := InundationThresholds()
	group.Params[1].Value = 0.1 // below the low threshold

	err := group.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), group.Name)
}

func TestGroupWithoutValidator(t *testing.T) {
	group := Group{Name: "free-form", Params: []Float{{Value: 2}, {Value: 1}}}
	assert.NoError(t, group.Validate())
}

func TestSingleThresholdDefault(t *testing.T) {
	p := SingleThreshold()
	assert.Equal(t, 1.0, p.Value)
	assert.True(t, p.IsRequired)
}
