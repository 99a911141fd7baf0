package main

import (
	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/fieldstats"
)

var (
	statsArrayPath string
	statsFields    string
	statsTop       int
)

func init() {
	statsCmd.Flags().StringVar(&statsArrayPath, "array-path", "", "Path to the array to analyze")
	statsCmd.Flags().StringVar(&statsFields, "fields", "", "Comma-separated field paths to analyze")
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "Top N frequent values to include")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [input]",
	Short: "Summarize record fields",
	Long: `Per-field summary statistics over a record set: presence ratio, type
spread, distinct-value count, most frequent values, and a numeric
summary when the field carries numbers.

Without --fields the sorted union of top-level record keys is analyzed.

Examples:
  dq stats data.json
  dq stats data.json --fields age,city --top 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	_, records := loadRecords(args, statsArrayPath)
	out, err := fieldstats.Analyze(records, splitFields(statsFields), statsTop)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return writeJSON(out)
}
