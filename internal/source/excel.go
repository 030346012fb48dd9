package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/app"
	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/table"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// ExcelLoader reads every sheet of a local Excel workbook
type ExcelLoader struct {
	path   string
	logger zerolog.Logger
}

// NewExcelLoader creates a loader for the workbook at path
func NewExcelLoader(env *app.Context, path string) *ExcelLoader {
	return &ExcelLoader{
		path:   path,
		logger: env.Named("excel"),
	}
}

// Load opens the workbook and converts each sheet to a table. Cell values
// arrive as the formatted strings the workbook displays, so decimal commas
// and date formats survive for the pipeline parsers to interpret.
func (l *ExcelLoader) Load(ctx context.Context) (string, []*table.Table, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open workbook %s: %w", l.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			l.logger.Warn().Err(err).Str("path", l.path).Msg("Failed to close workbook")
		}
	}()

	var tables []*table.Table
	for _, sheetName := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", nil, fmt.Errorf("workbook load canceled: %w", err)
		}

		rows, err := f.GetRows(sheetName)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
		}

		t := tableFromStrings(sheetName, rows)
		l.logger.Debug().
			Str("sheet", sheetName).
			Int("rows", t.NumRows()).
			Int("columns", t.NumCols()).
			Msg("Read sheet")
		tables = append(tables, t)
	}

	name := filepath.Base(l.path)
	l.logger.Info().
		Str("workbook", name).
		Int("sheets", len(tables)).
		Msg("Loaded Excel workbook")

	return name, tables, nil
}
