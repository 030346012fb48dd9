package source

import (
	"context"
	"fmt"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/app"
	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/config"
	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/table"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleLoader reads every sheet of a Google spreadsheet.
//
// Note: the Sheets API delivers [][]interface{}; this is the only layer
// where those raw values appear. Everything downstream works on Cell.
type GoogleLoader struct {
	service       *sheets.Service
	spreadsheetID string
	retry         config.RetryConfig
	logger        zerolog.Logger
}

// NewGoogleLoader creates a loader for the given spreadsheet using the
// service account credentials from the application config
func NewGoogleLoader(ctx context.Context, env *app.Context, spreadsheetID string) (*GoogleLoader, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(env.Config.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleLoader{
		service:       service,
		spreadsheetID: spreadsheetID,
		retry:         config.DefaultResilienceConfig.SpreadsheetRead,
		logger:        env.Named("google"),
	}, nil
}

// Load fetches the spreadsheet metadata and then the values of each sheet,
// retrying transient API failures per the read retry policy.
func (l *GoogleLoader) Load(ctx context.Context) (string, []*table.Table, error) {
	var spreadsheet *sheets.Spreadsheet
	err := l.retry.Run(ctx, l.logger, "spreadsheet metadata read", func(ctx context.Context) error {
		var err error
		spreadsheet, err = l.service.Spreadsheets.Get(l.spreadsheetID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to get spreadsheet %s: %w", l.spreadsheetID, err)
	}

	var tables []*table.Table
	for _, sheet := range spreadsheet.Sheets {
		title := sheet.Properties.Title

		var resp *sheets.ValueRange
		err := l.retry.Run(ctx, l.logger, "sheet values read", func(ctx context.Context) error {
			var err error
			// The bare sheet title in A1 notation selects the whole sheet
			resp, err = l.service.Spreadsheets.Values.Get(l.spreadsheetID, title).Context(ctx).Do()
			return err
		})
		if err != nil {
			return "", nil, fmt.Errorf("failed to read sheet %s: %w", title, err)
		}

		t := tableFromValues(title, resp.Values)
		l.logger.Debug().
			Str("sheet", title).
			Int("rows", t.NumRows()).
			Int("columns", t.NumCols()).
			Msg("Read sheet")
		tables = append(tables, t)
	}

	name := l.spreadsheetID
	if spreadsheet.Properties != nil && spreadsheet.Properties.Title != "" {
		name = spreadsheet.Properties.Title
	}
	l.logger.Info().
		Str("spreadsheet", name).
		Int("sheets", len(tables)).
		Msg("Loaded Google spreadsheet")

	return name, tables, nil
}
