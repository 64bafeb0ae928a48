package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/statboard/statboard/internal/dataset"
	"github.com/statboard/statboard/internal/schema"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>",
	Short: "Compute metrics for a local CSV file",
	Long: `Runs the same validate → aggregate pipeline as an upload and prints
the overall and per-name metrics as a table.

Example:
  statboard analyze testdata/scores.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	schemaCfg, err := schema.Load(schemaFile)
	if err != nil {
		return fmt.Errorf("load schema config: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	result := dataset.ProcessUpload(path, f, schemaCfg)
	if !result.OK() {
		return fmt.Errorf("dataset rejected: %s", result.Error)
	}

	if result.Summary == nil {
		fmt.Println("No data rows; nothing to report.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tAVERAGE\tMIN\tMAX")
	fmt.Fprintf(w, "(overall)\t%.2f\t%g\t%g\n",
		result.Summary.Overall.Average,
		result.Summary.Overall.Min,
		result.Summary.Overall.Max,
	)
	for _, g := range result.Summary.Groups {
		fmt.Fprintf(w, "%s\t%.2f\t%g\t%g\n", g.Name, g.Average, g.Min, g.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d rows, %d names\n", result.Rows, len(result.Summary.Groups))
	return nil
}
