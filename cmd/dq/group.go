package main

import (
	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/groupby"
)

var (
	groupArrayPath string
	groupBy        string
	groupAggs      []string
	groupSort      string
	groupTop       int
)

func init() {
	groupCmd.Flags().StringVar(&groupArrayPath, "array-path", "", "Path to the array to group")
	groupCmd.Flags().StringVar(&groupBy, "by", "", "Comma-separated fields to group by (required)")
	groupCmd.Flags().StringArrayVar(&groupAggs, "agg", nil,
		"Aggregation spec: 'count' or 'field:func' with func count|sum|min|max|mean|list|unique")
	groupCmd.Flags().StringVar(&groupSort, "sort", "count", "Sort groups by count (desc) or key (asc)")
	groupCmd.Flags().IntVar(&groupTop, "top", -1, "Limit output to top N groups")
	groupCmd.MarkFlagRequired("by")
	rootCmd.AddCommand(groupCmd)
}

var groupCmd = &cobra.Command{
	Use:   "group [input]",
	Short: "Group records and compute per-group aggregations",
	Long: `Group records by field values. Each group row carries the key fields,
the record count, and one entry per --agg spec.

Examples:
  dq group data.json --by city
  dq group data.json --by city --agg age:mean --agg age:max
  dq group data.json --by status,region --sort key --top 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGroup,
}

func runGroup(cmd *cobra.Command, args []string) error {
	if groupSort != "count" && groupSort != "key" {
		exitWithError(ExitError, "--sort must be count or key, got %q", groupSort)
	}
	var aggs []groupby.Agg
	for _, spec := range groupAggs {
		agg, err := groupby.ParseAgg(spec)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		aggs = append(aggs, agg)
	}

	_, records := loadRecords(args, groupArrayPath)
	out, err := groupby.Group(records, groupby.Options{
		By:     splitFields(groupBy),
		Aggs:   aggs,
		SortBy: groupSort,
		Top:    groupTop,
	})
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return writeJSON(out)
}
