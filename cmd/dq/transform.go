package main

import (
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/flatten"
	"github.com/zaremba/dq/internal/load"
	"github.com/zaremba/dq/internal/sqlout"
	"github.com/zaremba/dq/internal/value"
)

var (
	transformArrayPath string
	transformTo        string
	transformColumns   string
	transformOut       string
	transformTable     string
)

func init() {
	transformCmd.Flags().StringVar(&transformArrayPath, "array-path", "", "Path to the array to convert")
	transformCmd.Flags().StringVar(&transformTo, "to", "", "Target format: csv, jsonl, or sqlite")
	transformCmd.Flags().StringVar(&transformColumns, "columns", "", "Comma-separated columns for CSV output")
	transformCmd.Flags().StringVar(&transformOut, "out", "", "Output file (default stdout; required for sqlite)")
	transformCmd.Flags().StringVar(&transformTable, "table", "records", "Table name for sqlite output")
	rootCmd.AddCommand(transformCmd)
}

var transformCmd = &cobra.Command{
	Use:   "transform [input]",
	Short: "Convert between JSON, CSV, JSONL, and SQLite",
	Long: `Convert data between formats. Records flatten to dot-notation columns
for CSV and SQLite output; without --to the parsed document is written
back as JSON, which converts CSV or YAML input to JSON.

Examples:
  dq transform data.json --to csv
  dq transform data.csv
  dq transform data.json --to sqlite --out data.db --table users
  dq transform data.json --array-path results --to jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransform,
}

func runTransform(cmd *cobra.Command, args []string) error {
	doc, records := loadRecords(args, transformArrayPath)

	switch transformTo {
	case "":
		// Passthrough: emit the parsed document as JSON.
		if transformArrayPath != "" {
			return writeJSON(recordArray(records))
		}
		return writeJSON(doc)
	case "jsonl":
		w, closeFn, err := outputWriter()
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		defer closeFn()
		return load.WriteJSONL(w, records)
	case "csv":
		return transformCSV(records)
	case "sqlite":
		if transformOut == "" {
			exitWithError(ExitError, "--to sqlite requires --out")
		}
		n, err := sqlout.Export(transformOut, transformTable, records)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		return writeJSON(map[string]any{"inserted": n, "table": transformTable, "path": transformOut})
	}
	exitWithError(ExitError, "--to must be csv, jsonl, or sqlite, got %q", transformTo)
	return nil
}

func transformCSV(records []*value.Value) error {
	rows := make([]*value.Value, len(records))
	for i, record := range records {
		rows[i] = flattenRow(record)
	}
	columns := splitFields(transformColumns)
	if len(columns) == 0 {
		seen := map[string]bool{}
		for _, row := range rows {
			for _, key := range row.Keys {
				if !seen[key] {
					seen[key] = true
					columns = append(columns, key)
				}
			}
		}
		sort.Strings(columns)
	}

	delim, err := load.ParseDelimiter(csvDelimiter)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	w, closeFn, err := outputWriter()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer closeFn()
	return load.WriteCSV(w, columns, rows, delim)
}

func flattenRow(record *value.Value) *value.Value {
	if record.Kind != value.ObjectType && record.Kind != value.ArrayType {
		row := value.NewObject()
		row.Set("value", record)
		return row
	}
	return flatten.Flatten(record, ".", flatten.ArrayIndex)
}

// outputWriter opens --out for writing, defaulting to stdout.
func outputWriter() (io.Writer, func() error, error) {
	if transformOut == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(transformOut)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
