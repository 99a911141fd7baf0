package main

import (
	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/predicate"
)

var (
	filterArrayPath string
	filterWhere     []string
	filterExists    []string
	filterNotExists []string
	filterType      []string
	filterContains  []string
	filterRegex     []string
	filterExpr      []string
	filterUseOr     bool
)

func init() {
	filterCmd.Flags().StringVar(&filterArrayPath, "array-path", "", "Path to the array to filter")
	filterCmd.Flags().StringArrayVar(&filterWhere, "where", nil, `Comparison expression, e.g. "age>=21"`)
	filterCmd.Flags().StringArrayVar(&filterExists, "exists", nil, "Keep rows where path exists")
	filterCmd.Flags().StringArrayVar(&filterNotExists, "not-exists", nil, "Keep rows where path does not exist")
	filterCmd.Flags().StringArrayVar(&filterType, "type", nil, "Type condition field=typename")
	filterCmd.Flags().StringArrayVar(&filterContains, "contains", nil, "field:substring match on string values")
	filterCmd.Flags().StringArrayVar(&filterRegex, "regex", nil, "field:pattern match on string values")
	filterCmd.Flags().StringArrayVar(&filterExpr, "expr", nil, "Expression-language predicate over record fields")
	filterCmd.Flags().BoolVar(&filterUseOr, "or", false, "Use OR logic instead of AND")
	rootCmd.AddCommand(filterCmd)
}

var filterCmd = &cobra.Command{
	Use:   "filter [input]",
	Short: "Filter records by field conditions",
	Long: `Filter records with repeatable conditions. All conditions must match
unless --or is given.

Examples:
  dq filter data.json --where "age>=21" --where "city==NYC"
  dq filter data.json --exists email --not-exists deleted_at
  dq filter data.json --regex "email:@example\.com$" --or --contains "name:bob"
  dq filter data.json --expr 'age > 21 && status in ["active", "trial"]'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	preds, err := buildPredicates()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	_, records := loadRecords(args, filterArrayPath)
	if len(preds) == 0 {
		return writeJSON(recordArray(records))
	}

	combined := predicate.All(preds)
	if filterUseOr {
		combined = predicate.Any(preds)
	}
	out := recordArray(nil)
	for _, record := range records {
		if combined(record) {
			out.Items = append(out.Items, record)
		}
	}
	return writeJSON(out)
}

func buildPredicates() ([]predicate.Predicate, error) {
	var preds []predicate.Predicate
	add := func(p predicate.Predicate, err error) error {
		if err != nil {
			return err
		}
		preds = append(preds, p)
		return nil
	}
	for _, expr := range filterWhere {
		if err := add(predicate.Where(expr)); err != nil {
			return nil, err
		}
	}
	for _, path := range filterExists {
		if err := add(predicate.Exists(path, false)); err != nil {
			return nil, err
		}
	}
	for _, path := range filterNotExists {
		if err := add(predicate.Exists(path, true)); err != nil {
			return nil, err
		}
	}
	for _, spec := range filterType {
		if err := add(predicate.TypeIs(spec)); err != nil {
			return nil, err
		}
	}
	for _, spec := range filterContains {
		if err := add(predicate.Contains(spec)); err != nil {
			return nil, err
		}
	}
	for _, spec := range filterRegex {
		if err := add(predicate.Regex(spec)); err != nil {
			return nil, err
		}
	}
	for _, src := range filterExpr {
		if err := add(predicate.Expr(src)); err != nil {
			return nil, err
		}
	}
	return preds, nil
}
