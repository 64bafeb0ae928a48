package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	schemaFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "statboard",
	Short: "statboard - CSV metrics dashboard",
	Long: `statboard serves a single-page dashboard for CSV datasets.

Upload a file with name, date and value columns and get overall and
per-person average/min/max as a table and bar chart.

Examples:
  statboard serve
  statboard serve --port 9000
  statboard analyze testdata/scores.csv`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaFile, "schema", "", "schema config file (overrides SCHEMA_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
