package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableFixture() *Table {
	t := &Table{
		Classes: []int{NoDataCode, 0, 1, 2, 3},
		Rows:    map[string]map[int]float64{},
	}
	r1 := t.ensureRow("f1")
	r1[2] = 100
	r2 := t.ensureRow("f2")
	r2[NoDataCode] = 50
	return t
}

func TestBuildReport(t *testing.T) {
	rep := BuildReport(tableFixture(), DefaultCategoryClasses(), "id", "Impacted people by category")

	assert.Equal(t, "Impacted people by category", rep.Title)
	assert.Equal(t, []string{"id", NoDataLabel, "No hazard", "Low", "Medium", "High"}, rep.Header)

	require.Len(t, rep.Rows, 2)
	// Rows in encounter order, not sorted.
	assert.Equal(t, []string{"f1", "0", "0", "0", "100", "0"}, rep.Rows[0])
	assert.Equal(t, []string{"f2", "50", "0", "0", "0", "0"}, rep.Rows[1])

	assert.Contains(t, rep.Summary, "Impacted people by category")
	assert.Contains(t, rep.Summary, "Medium: 100")
	assert.Contains(t, rep.Summary, "No Data: 50")
}

func TestBuildReportFormatsLargeTotals(t *testing.T) {
	table := &Table{
		Classes: []int{NoDataCode, 0, 1, 2, 3},
		Rows:    map[string]map[int]float64{},
	}
	row := table.ensureRow("metro")
	row[3] = 1234567

	rep := BuildReport(table, DefaultCategoryClasses(), "id", "title")
	assert.Contains(t, rep.Summary, "High: 1,234,567")
	assert.Equal(t, "1,234,567", rep.Rows[0][5])
}

func TestBuildReportEncounterOrderPreserved(t *testing.T) {
	table := &Table{
		Classes: []int{0, 1},
		Rows:    map[string]map[int]float64{},
	}
	for _, g := range []string{"z", "a", "m"} {
		table.ensureRow(g)
	}

	classes := []HazardClass{{Code: 0, Label: "x"}, {Code: 1, Label: "y"}}
	rep := BuildReport(table, classes, "id", "t")

	got := make([]string, len(rep.Rows))
	for i, r := range rep.Rows {
		got[i] = r[0]
	}
	assert.Equal(t, []string{"z", "a", "m"}, got)
}
