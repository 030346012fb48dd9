// Package cli wires the dataset pipeline, task queue and publisher into the
// bosques command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/app"
	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/pipeline"
	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/source"
	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/variables"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile       string
	variablesFile string
	spreadsheetID string
)

var rootCmd = &cobra.Command{
	Use:   "bosques",
	Short: "Dataset pipeline for the Murcia forest monitoring network",
	Long: `bosques loads multi-sheet forestry datasets (temperature, dendrometer,
litterfall and capture-trap records), transforms each sheet into a common
shape and outer-joins them into a single table keyed by date and station.

Datasets are read from an .xlsx workbook or, with --spreadsheet, from a
Google Sheets document. The unified table can be exported as CSV and
published to the results host, and plot analyses are managed as a YAML
task queue.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file in addition to .env")
	rootCmd.PersistentFlags().StringVar(&variablesFile, "variables", "", "Variable dictionary YAML (overrides VARIABLES_FILE)")
	rootCmd.PersistentFlags().StringVar(&spreadsheetID, "spreadsheet", "", "Google Sheets spreadsheet ID instead of a workbook path")

	rootCmd.AddCommand(sheetsCmd)
	rootCmd.AddCommand(unifyCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(publishCmd)
}

// setup loads the environment and builds the application context shared by
// every command
func setup() (*app.Context, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	logger := app.SetupEnvironment()
	cfg := app.LoadConfig()
	if variablesFile != "" {
		cfg.VariablesFile = variablesFile
	}
	if spreadsheetID != "" {
		cfg.SpreadsheetID = spreadsheetID
	}

	return app.NewContext(cfg, logger), nil
}

func loadDictionary(env *app.Context) (*variables.Dictionary, error) {
	dict, err := variables.Load(env.Config.VariablesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load variable dictionary: %w", err)
	}
	return dict, nil
}

// resolveLoader picks the data source. An explicit --spreadsheet selects the
// Google Sheets source and leaves every argument as a sheet name; otherwise
// the first argument is the workbook path. With neither, the configured
// SPREADSHEET_ID is used.
func resolveLoader(ctx context.Context, env *app.Context, args []string) (source.Loader, []string, error) {
	if spreadsheetID == "" && len(args) > 0 {
		return source.NewExcelLoader(env, args[0]), args[1:], nil
	}

	id, err := env.Config.RequireSpreadsheetID()
	if err != nil {
		return nil, nil, fmt.Errorf("no workbook path given: %w", err)
	}
	loader, err := source.NewGoogleLoader(ctx, env, id)
	if err != nil {
		return nil, nil, err
	}
	return loader, args, nil
}

// loadPipeline reads the requested source into a pipeline service and returns
// it with the sheet selection taken from the remaining arguments
func loadPipeline(ctx context.Context, env *app.Context, args []string) (*pipeline.Service, []string, error) {
	loader, selection, err := resolveLoader(ctx, env, args)
	if err != nil {
		return nil, nil, err
	}

	name, tables, err := loader.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	dict, err := loadDictionary(env)
	if err != nil {
		return nil, nil, err
	}

	svc := pipeline.NewService(env, dict)
	svc.SetSheets(name, tables)
	return svc, selection, nil
}
