package main

import (
	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/dotpath"
	"github.com/zaremba/dq/internal/value"
)

var (
	extractArrayPath      string
	extractFields         string
	extractFirst          int
	extractLast           int
	extractIncludeMissing bool
)

func init() {
	extractCmd.Flags().StringVar(&extractArrayPath, "array-path", "", "Path to the array to extract rows from")
	extractCmd.Flags().StringVar(&extractFields, "fields", "", "Comma-separated paths to extract from each row")
	extractCmd.Flags().IntVar(&extractFirst, "first", -1, "Keep first N rows")
	extractCmd.Flags().IntVar(&extractLast, "last", -1, "Keep last N rows")
	extractCmd.Flags().BoolVar(&extractIncludeMissing, "include-missing", false, "Include missing fields as null")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [input]",
	Short: "Extract rows and fields from records",
	Long: `Extract rows and/or fields from a record set.

Row selection (--first, --last) applies before field projection. A field
path matching several values keeps them all as an array; a single match
stays scalar.

Examples:
  dq extract data.json --fields name,age
  dq extract data.json --array-path results --first 10
  dq extract data.json --fields user.email --include-missing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	doc := loadDocument(args)
	records, err := extractRows(doc, extractArrayPath, extractFirst, extractLast)
	if err != nil {
		exitWithError(ExitError, "resolving --array-path: %v", err)
	}

	fields := splitFields(extractFields)
	if len(fields) == 0 {
		return writeJSON(recordArray(records))
	}

	fieldTokens := make([][]dotpath.Token, len(fields))
	for i, field := range fields {
		tokens, err := dotpath.Parse(field)
		if err != nil {
			exitWithError(ExitError, "parsing --fields: %v", err)
		}
		fieldTokens[i] = tokens
	}

	out := value.NewArray()
	for _, record := range records {
		out.Items = append(out.Items, projectRecord(record, fields, fieldTokens))
	}
	return writeJSON(out)
}

// extractRows resolves and slices the row set. Slicing happens before the
// single-record fallback, so a slice that empties a real record set stays
// empty while a non-array document still passes through whole.
func extractRows(doc *value.Value, arrayPath string, first, last int) ([]*value.Value, error) {
	rows, err := dotpath.Records(doc, arrayPath)
	if err != nil {
		return nil, err
	}
	rows = sliceRows(rows, first, last)
	if len(rows) == 0 && doc.Kind != value.ArrayType {
		rows = []*value.Value{doc}
	}
	return rows, nil
}

func sliceRows(rows []*value.Value, first, last int) []*value.Value {
	if first >= 0 && first < len(rows) {
		rows = rows[:first]
	}
	if last >= 0 && last < len(rows) {
		rows = rows[len(rows)-last:]
	}
	return rows
}

// projectRecord builds the projected row for one record. Non-object rows
// pass through under a "_value" key.
func projectRecord(record *value.Value, fields []string, tokens [][]dotpath.Token) *value.Value {
	if record.Kind != value.ObjectType {
		row := value.NewObject()
		row.Set("_value", record)
		return row
	}
	row := value.NewObject()
	for i, field := range fields {
		matches := dotpath.Extract(record, tokens[i])
		switch {
		case len(matches) > 1:
			multi := value.NewArray()
			multi.Items = append(multi.Items, matches...)
			row.Set(field, multi)
		case len(matches) == 1:
			row.Set(field, matches[0])
		case extractIncludeMissing:
			row.Set(field, value.Null())
		}
	}
	return row
}
