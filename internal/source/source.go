// Package source loads raw worksheets into tables, either from a local
// Excel workbook or from a Google spreadsheet.
package source

import (
	"context"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/table"
)

// Loader produces the raw sheet tables of one workbook. Implementations
// return the workbook's display name and one table per sheet, in workbook
// order.
type Loader interface {
	Load(ctx context.Context) (string, []*table.Table, error)
}

// tableFromStrings builds a sheet table from string rows as Excel readers
// deliver them. The first row provides the column headers; short data rows
// are padded with missing cells and cells beyond the header width are
// dropped. Empty strings become missing cells.
func tableFromStrings(name string, rows [][]string) *table.Table {
	if len(rows) == 0 {
		return table.New(name, nil)
	}

	header := make([]string, len(rows[0]))
	copy(header, rows[0])

	t := table.New(name, header)
	for _, row := range rows[1:] {
		cells := make([]table.Cell, len(header))
		for i := range header {
			if i >= len(row) || row[i] == "" {
				cells[i] = table.Missing()
				continue
			}
			cells[i] = table.NewCell(row[i])
		}
		_ = t.AppendRow(cells)
	}
	return t
}

// tableFromValues builds a sheet table from the loosely typed rows the
// Google Sheets API returns, with the same header and padding rules as
// tableFromStrings.
func tableFromValues(name string, rows [][]interface{}) *table.Table {
	if len(rows) == 0 {
		return table.New(name, nil)
	}

	header := make([]string, len(rows[0]))
	for i, v := range rows[0] {
		header[i] = table.NewCell(v).String()
	}

	t := table.New(name, header)
	for _, row := range rows[1:] {
		cells := make([]table.Cell, len(header))
		for i := range header {
			if i >= len(row) || row[i] == nil || row[i] == "" {
				cells[i] = table.Missing()
				continue
			}
			cells[i] = table.NewCell(row[i])
		}
		_ = t.AppendRow(cells)
	}
	return t
}
