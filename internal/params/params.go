// Package params declares the typed run parameters the engine is configured
// with, including group parameters that carry a custom validator invoked at
// configuration time.
package params

import (
	"github.com/rotisserie/eris"
)

// Float is a numeric parameter with display metadata.
type Float struct {
	Name         string
	Value        float64
	IsRequired   bool
	Precision    int
	Unit         string
	AllowedUnits []string
	HelpText     string
}

// Group bundles ordered sub-parameters with an optional custom validator.
// EnableParameter mirrors whether the group overrides its single-value
// counterpart.
type Group struct {
	Name            string
	EnableParameter bool
	HelpText        string
	Params          []Float
	Validator       func([]Float) error
}

// Validate runs the group's custom validator, if any.
func (g *Group) Validate() error {
	if g.Validator == nil {
		return nil
	}
	if err := g.Validator(g.Params); err != nil {
		return eris.Wrapf(err, "params: group %q", g.Name)
	}
	return nil
}

// Values returns the ordered sub-parameter values.
func (g *Group) Values() []float64 {
	out := make([]float64, len(g.Params))
	for i, p := range g.Params {
		out[i] = p.Value
	}
	return out
}

// StrictlyIncreasing rejects parameter sequences that tie or invert.
func StrictlyIncreasing(ps []Float) error {
	for i := 1; i < len(ps); i++ {
		if ps[i].Value <= ps[i-1].Value {
			return eris.Errorf("values must be ordered from small to big, found %v", values(ps))
		}
	}
	return nil
}

func values(ps []Float) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Value
	}
	return out
}

// SingleThreshold returns the default single flood threshold parameter.
func SingleThreshold() Float {
	return Float{
		Name:         "Threshold [m]",
		Value:        1.0,
		IsRequired:   true,
		Precision:    2,
		Unit:         "metres",
		AllowedUnits: []string{"metres"},
		HelpText:     "Threshold value to categorise inundated area.",
	}
}

// InundationThresholds returns the default multi-level threshold group.
// Enabling it overrides the single threshold.
func InundationThresholds() Group {
	levels := []struct {
		name  string
		value float64
	}{
		{"Low inundation threshold [m]", 0.2},
		{"Medium inundation threshold [m]", 1.0},
		{"High inundation threshold [m]", 1.5},
		{"Extreme inundation threshold [m]", 2.0},
	}

	ps := make([]Float, len(levels))
	for i, l := range levels {
		ps[i] = Float{
			Name:         l.name,
			Value:        l.value,
			IsRequired:   true,
			Precision:    2,
			Unit:         "metres",
			AllowedUnits: []string{"metres"},
			HelpText:     "Threshold value to categorise inundated area.",
		}
	}

	return Group{
		Name:      "Thresholds [m]",
		HelpText:  "Threshold values to categorise inundated area in multiple levels.",
		Params:    ps,
		Validator: StrictlyIncreasing,
	}
}
