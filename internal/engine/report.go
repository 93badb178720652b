package engine

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report is the tabular impact report: ordered class labels as column
// headers, one data row per group in encounter order, plus a text summary.
type Report struct {
	Title   string
	Header  []string
	Rows    [][]string
	Summary string
}

// BuildReport turns the statistics table into a report structure. Column
// order follows the ordered class set; row order reproduces the table's
// first-appearance group order, not a sort.
func BuildReport(t *Table, classes []HazardClass, groupField, title string) *Report {
	header := make([]string, 0, len(classes)+1)
	header = append(header, groupField)
	for _, c := range classes {
		header = append(header, c.Label)
	}

	p := message.NewPrinter(language.English)

	rows := make([][]string, 0, len(t.Groups))
	for _, group := range t.Groups {
		row := make([]string, 0, len(classes)+1)
		row = append(row, group)
		for _, c := range classes {
			row = append(row, p.Sprintf("%.0f", t.Rows[group][c.Code]))
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title)
	for _, c := range classes {
		fmt.Fprintf(&b, "- %s: %s\n", c.Label, p.Sprintf("%.0f", t.Total(c.Code)))
	}

	return &Report{
		Title:   title,
		Header:  header,
		Rows:    rows,
		Summary: b.String(),
	}
}
