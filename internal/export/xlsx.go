// Package export writes impact reports to spreadsheet workbooks for
// downstream consumers; rendering to maps or HTML stays with the host.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/geosafe/impact-cli/internal/engine"
)

// WriteXLSX writes the report table to one sheet and the raw statistics
// totals to a second sheet of a new workbook at path.
func WriteXLSX(path string, report *engine.Report, stats *engine.Table) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("impact")
	if err != nil {
		return eris.Wrap(err, "export: add impact sheet")
	}

	title := sheet.AddRow()
	title.AddCell().SetString(report.Title)

	header := sheet.AddRow()
	for _, h := range report.Header {
		header.AddCell().SetString(h)
	}
	for _, row := range report.Rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().SetString(cell)
		}
	}

	if stats != nil {
		raw, err := file.AddSheet("statistics")
		if err != nil {
			return eris.Wrap(err, "export: add statistics sheet")
		}
		head := raw.AddRow()
		head.AddCell().SetString("group")
		for _, c := range stats.Classes {
			head.AddCell().SetInt(c)
		}
		for _, group := range stats.Groups {
			r := raw.AddRow()
			r.AddCell().SetString(group)
			for _, c := range stats.Classes {
				r.AddCell().SetFloat(stats.Rows[group][c])
			}
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "export: save workbook %s", path)
	}
	return nil
}
