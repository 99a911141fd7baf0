package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/load"
	"github.com/zaremba/dq/internal/value"
)

var validateStrict bool

var trailingCommaRE = regexp.MustCompile(`,\s*[}\]]`)

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Enable extra non-fatal checks")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [input]",
	Short: "Validate input syntax and report diagnostics",
	Long: `Validate input syntax and report a structural summary.

Valid input reports the top-level type, size, and record or field counts.
Invalid JSON reports the parse error with line, column, and byte position.

Examples:
  dq validate data.json
  cat data.json | dq validate --strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

// ValidationReport is the validate command's JSON output.
type ValidationReport struct {
	Valid           bool     `json:"valid"`
	Error           string   `json:"error,omitempty"`
	Line            int      `json:"line,omitempty"`
	Column          int      `json:"column,omitempty"`
	Position        int64    `json:"position,omitempty"`
	TopLevelType    string   `json:"top_level_type,omitempty"`
	SizeBytes       int      `json:"size_bytes,omitempty"`
	RecordCount     *int     `json:"record_count,omitempty"`
	FieldCount      *int     `json:"field_count,omitempty"`
	SkippedRows     *int     `json:"skipped_rows,omitempty"`
	ExpectedColumns *int     `json:"expected_columns,omitempty"`
	Warnings        []string `json:"warnings"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	data, err := load.ReadSource(inputArg(args))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	report := ValidationReport{Warnings: []string{}}
	format := load.Detect(inputArg(args), data, opts.Format)
	if validateStrict && format == load.FormatJSON && trailingCommaRE.MatchString(string(data)) {
		report.Warnings = append(report.Warnings, "Possible trailing comma detected.")
	}
	if format == load.FormatCSV {
		return validateCSV(string(data), opts, report)
	}

	doc, err := load.Parse(inputArg(args), data, opts)
	if err != nil {
		report.Error = err.Error()
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			report.Error = syntaxErr.Error()
			report.Position = syntaxErr.Offset
			report.Line, report.Column = lineColumn(data, syntaxErr.Offset)
		}
		// Invalid data is a diagnosis, not a crash; the report goes to
		// stdout and the exit code signals the failure.
		writeJSON(report)
		os.Exit(ExitDataError)
	}

	report.Valid = true
	report.TopLevelType = doc.TypeName()
	report.SizeBytes = len(data)
	switch doc.Kind {
	case value.ArrayType:
		n := len(doc.Items)
		report.RecordCount = &n
	case value.ObjectType:
		n := len(doc.Keys)
		report.FieldCount = &n
	}
	return writeJSON(report)
}

func validateCSV(text string, opts load.Options, report ValidationReport) error {
	report, failed := csvValidation(text, opts, validateStrict, report)
	if failed {
		writeJSON(report)
		os.Exit(ExitDataError)
	}
	return writeJSON(report)
}

// csvValidation reports dialect diagnostics alongside the row count: how
// many ragged rows loading dropped and the header width they were held
// against. Strict mode turns dropped rows into a failure.
func csvValidation(text string, opts load.Options, strict bool, report ValidationReport) (ValidationReport, bool) {
	doc, stats, err := load.LoadCSVStats(text, opts)
	if err != nil {
		report.Error = err.Error()
		return report, true
	}

	report.TopLevelType = doc.TypeName()
	report.SizeBytes = len(text)
	n := len(doc.Items)
	report.RecordCount = &n
	report.SkippedRows = &stats.SkippedRows
	report.ExpectedColumns = &stats.ExpectedColumns

	if strict && stats.SkippedRows > 0 {
		report.Error = fmt.Sprintf("Inconsistent column count: %d row(s) skipped (footer/comment lines).", stats.SkippedRows)
		return report, true
	}
	report.Valid = true
	return report, false
}

// lineColumn converts a byte offset into 1-based line and column numbers.
func lineColumn(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := string(data[:offset])
	line = strings.Count(prefix, "\n") + 1
	col = int(offset) - strings.LastIndex(prefix, "\n")
	return line, col
}
