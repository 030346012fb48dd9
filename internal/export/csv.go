// Package export writes pipeline results out of the process: CSV files for
// unified tables and an SCP publisher that pushes them to the results host.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/table"
)

// WriteCSV writes a table as CSV: one header row, then one record per table
// row. Missing cells become empty fields.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		for j, cell := range t.Row(i) {
			record[j] = cell.String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

// SaveCSV writes a table to a CSV file at path
func SaveCSV(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file %s: %w", path, err)
	}
	return nil
}
