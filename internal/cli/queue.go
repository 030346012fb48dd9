package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/Ocanamat/Analisis-Bosques-Murcia-App/internal/grammar"

	"github.com/spf13/cobra"
)

var (
	analysisFile string

	taskName     string
	taskPlot     string
	taskX        string
	taskY        string
	taskColor    string
	taskSize     string
	taskShape    string
	taskAlpha    string
	taskFacetRow string
	taskFacetCol string
	taskXScale   string
	taskYScale   string
	taskFlip     bool

	listingDir string
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Manage the analysis task queue",
	Long: `The task queue holds the plots of one analysis as grammar-of-graphics
records, persisted to a YAML analysis file.`,
}

var queueInitCmd = &cobra.Command{
	Use:          "init",
	Short:        "Create an empty analysis file",
	SilenceUsage: true,
	RunE:         runQueueInit,
}

var queueAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a plot task to the analysis",
	Example: `  # Temperature against date, one color per station
  $ bosques queue add --name "Temperaturas" --plot Líneas --x Fecha --y Temp_Mean --color Estación`,
	SilenceUsage: true,
	RunE:         runQueueAdd,
}

var queueListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List the queued plot tasks",
	SilenceUsage: true,
	RunE:         runQueueList,
}

var queueGenerateCmd = &cobra.Command{
	Use:          "generate",
	Short:        "Write the plot listing text file for the queued tasks",
	SilenceUsage: true,
	RunE:         runQueueGenerate,
}

func init() {
	queueCmd.PersistentFlags().StringVar(&analysisFile, "file", "analisis.yaml", "Analysis YAML file")

	queueAddCmd.Flags().StringVar(&taskName, "name", "", "Task name (default: Gráfico N)")
	queueAddCmd.Flags().StringVar(&taskPlot, "plot", "", "Plot type: Dispersión, Líneas, Barras, Histograma")
	queueAddCmd.Flags().StringVar(&taskX, "x", "", "Variable on the X axis")
	queueAddCmd.Flags().StringVar(&taskY, "y", "", "Variable on the Y axis")
	queueAddCmd.Flags().StringVar(&taskColor, "color", "", "Variable mapped to color")
	queueAddCmd.Flags().StringVar(&taskSize, "size", "", "Variable mapped to size")
	queueAddCmd.Flags().StringVar(&taskShape, "shape", "", "Variable mapped to shape")
	queueAddCmd.Flags().StringVar(&taskAlpha, "alpha", "", "Variable mapped to transparency")
	queueAddCmd.Flags().StringVar(&taskFacetRow, "facet-row", "", "Variable for facet rows")
	queueAddCmd.Flags().StringVar(&taskFacetCol, "facet-col", "", "Variable for facet columns")
	queueAddCmd.Flags().StringVar(&taskXScale, "x-scale", "", "X axis scale: lineal or log")
	queueAddCmd.Flags().StringVar(&taskYScale, "y-scale", "", "Y axis scale: lineal or log")
	queueAddCmd.Flags().BoolVar(&taskFlip, "flip", false, "Flip the coordinate axes")

	queueGenerateCmd.Flags().StringVar(&listingDir, "out", "", "Output directory for the listing (default: OUTPUT_DIR)")

	queueCmd.AddCommand(queueInitCmd)
	queueCmd.AddCommand(queueAddCmd)
	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueGenerateCmd)
}

func runQueueInit(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	q := grammar.NewQueue(env)
	if err := q.Save(analysisFile); err != nil {
		return err
	}
	fmt.Printf("Created analysis file %s\n", analysisFile)
	return nil
}

func runQueueAdd(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	q := grammar.NewQueue(env)
	if _, statErr := os.Stat(analysisFile); statErr == nil {
		if err := q.Load(analysisFile); err != nil {
			return err
		}
	}

	spec := grammar.NewSpec()
	assignments := []struct {
		field string
		value string
	}{
		{"x", taskX},
		{"y", taskY},
		{"color", taskColor},
		{"size", taskSize},
		{"shape", taskShape},
		{"alpha", taskAlpha},
		{"facet_row", taskFacetRow},
		{"facet_col", taskFacetCol},
	}
	for _, a := range assignments {
		if a.value == "" {
			continue
		}
		if err := spec.Assign(a.field, a.value); err != nil {
			return err
		}
	}
	if taskPlot != "" {
		if err := spec.SetOption("plot_type", taskPlot); err != nil {
			return err
		}
	}
	if taskXScale != "" {
		if err := spec.SetOption("x_scale", taskXScale); err != nil {
			return err
		}
	}
	if taskYScale != "" {
		if err := spec.SetOption("y_scale", taskYScale); err != nil {
			return err
		}
	}
	if taskFlip {
		if err := spec.SetOption("coords", grammar.CoordsFlipped); err != nil {
			return err
		}
	}

	name := taskName
	if name == "" {
		name = fmt.Sprintf("Gráfico %d", q.Len()+1)
	}
	q.Add(name, spec)

	if err := q.Save(analysisFile); err != nil {
		return err
	}
	fmt.Printf("Added %q (%d task(s) in %s)\n", name, q.Len(), analysisFile)
	return nil
}

func runQueueList(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	q := grammar.NewQueue(env)
	if err := q.Load(analysisFile); err != nil {
		return err
	}
	if q.Len() == 0 {
		fmt.Println("No tasks queued")
		return nil
	}

	for i, task := range q.Tasks() {
		fmt.Printf("%d. %s [%s]\n", i+1, task.Name, task.Spec.PlotType)

		var mapped []string
		for _, m := range []struct {
			label string
			value string
		}{
			{"x", task.Spec.X},
			{"y", task.Spec.Y},
			{"color", task.Spec.Color},
			{"facetas", strings.TrimSpace(task.Spec.FacetRow + " " + task.Spec.FacetCol)},
		} {
			if m.value != "" {
				mapped = append(mapped, fmt.Sprintf("%s=%s", m.label, m.value))
			}
		}
		if len(mapped) > 0 {
			fmt.Printf("   %s\n", strings.Join(mapped, "  "))
		}
	}
	return nil
}

func runQueueGenerate(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}

	q := grammar.NewQueue(env)
	if err := q.Load(analysisFile); err != nil {
		return err
	}

	dir := listingDir
	if dir == "" {
		dir = env.Config.OutputDir
	}

	path, err := q.Generate(dir)
	if err != nil {
		return err
	}
	fmt.Printf("Listing written to %s\n", path)
	return nil
}
