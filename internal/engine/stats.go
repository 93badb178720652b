package engine

import (
	"github.com/geosafe/impact-cli/internal/layer"
)

// Table accumulates per-class totals keyed by feature group. Groups records
// first-appearance order; Rows holds the totals, every row zero-filled for
// every known class.
type Table struct {
	Classes []int
	Groups  []string
	Rows    map[string]map[int]float64
}

// ensureRow initialises a zero-filled row for the group before any
// accumulation, so no row is ever sparse.
func (t *Table) ensureRow(group string) map[int]float64 {
	if row, ok := t.Rows[group]; ok {
		return row
	}
	row := make(map[int]float64, len(t.Classes))
	for _, c := range t.Classes {
		row[c] = 0
	}
	t.Rows[group] = row
	t.Groups = append(t.Groups, group)
	return row
}

// Total returns the sum across all groups for a class code.
func (t *Table) Total(class int) float64 {
	var sum float64
	for _, row := range t.Rows {
		sum += row[class]
	}
	return sum
}

// Aggregate accumulates valueField into table[group][class] for every
// feature of the classified layer. Accumulation is a pure sum, so totals are
// identical for any feature iteration order. A class code outside the known
// class set is a configuration error, not a silent extra bucket.
func Aggregate(l *layer.Layer, groupField, classField, valueField string, classes []HazardClass) (*Table, error) {
	for _, f := range []string{groupField, classField, valueField} {
		if !l.HasAttribute(f) {
			return nil, &ConfigurationError{Field: f, Reason: "missing from classified layer schema"}
		}
	}

	t := &Table{
		Classes: make([]int, len(classes)),
		Rows:    map[string]map[int]float64{},
	}
	known := make(map[int]bool, len(classes))
	for i, c := range classes {
		t.Classes[i] = c.Code
		known[c.Code] = true
	}

	for _, att := range l.Data {
		group := att.String(groupField)
		class, err := att.Int(classField)
		if err != nil {
			return nil, &ConfigurationError{Field: classField, Reason: err.Error()}
		}
		if !known[class] {
			return nil, &ConfigurationError{Field: classField, Reason: "class code not in configured class set"}
		}
		value, err := att.Float(valueField)
		if err != nil {
			return nil, &ConfigurationError{Field: valueField, Reason: err.Error()}
		}

		row := t.ensureRow(group)
		row[class] += value
	}

	return t, nil
}
