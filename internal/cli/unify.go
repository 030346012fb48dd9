package cli

import (
	"fmt"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/export"

	"github.com/spf13/cobra"
)

var unifyOut string

var unifyCmd = &cobra.Command{
	Use:   "unify [workbook.xlsx] [sheet...]",
	Short: "Transform the selected sheets and outer-join them into the unified table",
	Long: `Runs the full pipeline over the selected sheets: per-type transformation,
join-column standardization and a sequential outer join on (Fecha, Estacion).
The first selected sheet is the join base. Without an explicit selection
every sheet of the source is used, in load order.`,
	Example: `  # Unify two sheets and write the result as CSV
  $ bosques unify datos.xlsx ESFP_datos_temperaturas_final ESFP_dendrometros_final --out unificado.csv`,
	SilenceUsage: true,
	RunE:         runUnify,
}

var summaryCmd = &cobra.Command{
	Use:          "summary [workbook.xlsx] [sheet...]",
	Short:        "Show the shape and per-column fill of the unified table",
	SilenceUsage: true,
	RunE:         runSummary,
}

func init() {
	unifyCmd.Flags().StringVar(&unifyOut, "out", "", "Write the unified table to this CSV path")
}

func runUnify(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	svc, selection, err := loadPipeline(cmd.Context(), env, args)
	if err != nil {
		return err
	}
	if len(selection) == 0 {
		selection = svc.SheetNames()
	}

	unified, report, err := svc.Unify(selection)
	if err != nil {
		return fmt.Errorf("unification failed: %w", err)
	}

	fmt.Println(report)

	if unifyOut != "" {
		if err := export.SaveCSV(unifyOut, unified); err != nil {
			return err
		}
		fmt.Printf("\nUnified table written to %s\n", unifyOut)
	}
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	svc, selection, err := loadPipeline(cmd.Context(), env, args)
	if err != nil {
		return err
	}
	if len(selection) == 0 {
		selection = svc.SheetNames()
	}

	unified, _, err := svc.Unify(selection)
	if err != nil {
		return fmt.Errorf("unification failed: %w", err)
	}

	fmt.Printf("Rows: %d\n", unified.NumRows())
	fmt.Printf("Columns: %d\n\n", unified.NumCols())
	for _, col := range unified.Columns() {
		nonNull := 0
		for i := 0; i < unified.NumRows(); i++ {
			if !unified.Value(i, col).IsMissing() {
				nonNull++
			}
		}
		fmt.Printf("- %s: %d non-null\n", col, nonNull)
	}
	return nil
}
