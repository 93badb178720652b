package engine

import (
	"fmt"

	"github.com/geosafe/impact-cli/internal/layer"
)

// CategorisedStyleType is the style type understood by the rendering host.
const CategorisedStyleType = "categorizedSymbol"

// Ramp endpoints: green for the lowest class through red for the highest.
// The sentinel class is always neutral grey.
var (
	rampLow    = [3]int{0x1e, 0xfc, 0x7c}
	rampHigh   = [3]int{0xf3, 0x1a, 0x1c}
	noDataGrey = "#9e9e9e"
)

// ColourRamp returns n hex colours linearly interpolated between the ramp
// endpoints. Deterministic: the same n always yields the same colours.
func ColourRamp(n int) []string {
	colours := make([]string, n)
	for i := range colours {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(rampLow[0]) + t*float64(rampHigh[0]-rampLow[0]))
		g := int(float64(rampLow[1]) + t*float64(rampHigh[1]-rampLow[1]))
		b := int(float64(rampLow[2]) + t*float64(rampHigh[2]-rampLow[2]))
		colours[i] = fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	return colours
}

// BuildStyle derives the categorical style descriptor for the class set.
// Classes carrying an explicit colour keep it; the rest are filled from the
// ramp. The sentinel class renders grey.
func BuildStyle(targetField string, classes []HazardClass) *layer.StyleInfo {
	// Count ramp slots: classes without explicit colours, sentinel excluded.
	slots := 0
	for _, c := range classes {
		if c.Colour == "" && c.Code != NoDataCode {
			slots++
		}
	}
	ramp := ColourRamp(slots)

	styleClasses := make([]layer.StyleClass, 0, len(classes))
	next := 0
	for _, c := range classes {
		colour := c.Colour
		if colour == "" {
			if c.Code == NoDataCode {
				colour = noDataGrey
			} else {
				colour = ramp[next]
				next++
			}
		}
		styleClasses = append(styleClasses, layer.StyleClass{
			Label:        c.Label,
			Value:        c.Code,
			Colour:       colour,
			Transparency: 0,
			Size:         1,
		})
	}

	return &layer.StyleInfo{
		TargetField:  targetField,
		StyleClasses: styleClasses,
		StyleType:    CategorisedStyleType,
	}
}
