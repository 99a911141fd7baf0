package main

import (
	"github.com/spf13/cobra"
)

var reverseArrayPath string

func init() {
	reverseCmd.Flags().StringVar(&reverseArrayPath, "array-path", "", "Path to the array to reverse")
	rootCmd.AddCommand(reverseCmd)
}

var reverseCmd = &cobra.Command{
	Use:   "reverse [input]",
	Short: "Reverse the order of records",
	Long: `Reverse record order.

Examples:
  dq reverse data.json
  dq reverse data.json --array-path events`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReverse,
}

func runReverse(cmd *cobra.Command, args []string) error {
	_, records := loadRecords(args, reverseArrayPath)
	out := recordArray(nil)
	for i := len(records) - 1; i >= 0; i-- {
		out.Items = append(out.Items, records[i])
	}
	return writeJSON(out)
}
