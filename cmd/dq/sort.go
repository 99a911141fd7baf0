package main

import (
	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/sortrec"
)

var (
	sortArrayPath string
	sortBy        string
	sortDesc      bool
	sortNumeric   bool
)

func init() {
	sortCmd.Flags().StringVar(&sortArrayPath, "array-path", "", "Path to the array to sort")
	sortCmd.Flags().StringVar(&sortBy, "by", "", "Comma-separated sort fields (required)")
	sortCmd.Flags().BoolVar(&sortDesc, "desc", false, "Sort descending")
	sortCmd.Flags().BoolVar(&sortNumeric, "numeric", false, "Use numeric sorting semantics")
	sortCmd.MarkFlagRequired("by")
	rootCmd.AddCommand(sortCmd)
}

var sortCmd = &cobra.Command{
	Use:   "sort [input]",
	Short: "Sort records by one or more fields",
	Long: `Sort records by field paths. The default order is lexicographic on
each key's canonical form; --numeric coerces keys to numbers, with
missing and non-numeric values sorting first.

Examples:
  dq sort data.json --by name
  dq sort data.json --by score --numeric --desc
  dq sort data.json --by city,name`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSort,
}

func runSort(cmd *cobra.Command, args []string) error {
	_, records := loadRecords(args, sortArrayPath)
	sorted, err := sortrec.Sort(records, sortrec.Options{
		By:      splitFields(sortBy),
		Desc:    sortDesc,
		Numeric: sortNumeric,
	})
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return writeJSON(recordArray(sorted))
}
