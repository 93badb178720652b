package engine

import "fmt"

// DefaultCategoryClasses is the class set for categorised vector hazards:
// the sentinel plus four hazard levels.
func DefaultCategoryClasses() []HazardClass {
	return []HazardClass{
		{Code: NoDataCode, Label: NoDataLabel},
		{Code: 0, Label: "No hazard"},
		{Code: 1, Label: "Low"},
		{Code: 2, Label: "Medium"},
		{Code: 3, Label: "High"},
	}
}

// InundationClasses is the class set for multi-threshold flood
// classification: dry plus one inundation level per threshold.
func InundationClasses(thresholds []float64) []HazardClass {
	labels := []string{"Low inundation", "Medium inundation", "High inundation", "Extreme inundation"}

	classes := []HazardClass{
		{Code: NoDataCode, Label: NoDataLabel},
		{Code: 0, Label: "Dry"},
	}
	for i := range thresholds {
		label := fmt.Sprintf("Inundation level %d", i+1)
		if i < len(labels) && len(thresholds) <= len(labels) {
			label = labels[i]
		}
		classes = append(classes, HazardClass{Code: i + 1, Label: label})
	}
	return classes
}

// SingleThresholdClasses is the dry/flooded/wet class set with the fixed
// colours the rendering host expects for single-threshold flood maps.
func SingleThresholdClasses(threshold float64) []HazardClass {
	return []HazardClass{
		{Code: NoDataCode, Label: NoDataLabel},
		{Code: 0, Label: "Dry (<= 0 m)", Colour: "#1EFC7C"},
		{Code: 1, Label: fmt.Sprintf("Flooded (>= %.1f m)", threshold), Colour: "#F31A1C"},
		{Code: 2, Label: fmt.Sprintf("Wet (0 m - %.1f m)", threshold), Colour: "#FF9900"},
	}
}
