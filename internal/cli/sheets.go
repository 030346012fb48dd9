package cli

import (
	"fmt"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/pipeline"

	"github.com/spf13/cobra"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets [workbook.xlsx]",
	Short: "List the sheets of a dataset with their classification",
	Example: `  # Sheets of a local workbook
  $ bosques sheets datos.xlsx

  # Sheets of a Google Sheets document
  $ bosques sheets --spreadsheet 1BxiM...`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runSheets,
}

func runSheets(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	svc, _, err := loadPipeline(cmd.Context(), env, args)
	if err != nil {
		return err
	}

	fmt.Println(svc.Summary())
	fmt.Println("\nClassification:")
	for _, name := range svc.SheetNames() {
		fmt.Printf("- %s: %s\n", name, pipeline.Classify(name))
	}
	return nil
}
