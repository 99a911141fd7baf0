package main

import (
	"os"
	"strings"

	"github.com/zaremba/dq/internal/dotpath"
	"github.com/zaremba/dq/internal/load"
	"github.com/zaremba/dq/internal/value"
)

// loadOptions assembles load options from the persistent flags. The
// delimiter stays zero (content detection) unless the flag or DQ_DELIMITER
// pinned one.
func loadOptions() (load.Options, error) {
	format, err := load.ParseFormat(inputFormat)
	if err != nil {
		return load.Options{}, err
	}
	var delim rune
	if rootCmd.PersistentFlags().Changed("delimiter") || os.Getenv("DQ_DELIMITER") != "" {
		delim, err = load.ParseDelimiter(csvDelimiter)
		if err != nil {
			return load.Options{}, err
		}
	}
	return load.Options{
		Format:      format,
		Delimiter:   delim,
		NoHeader:    csvNoHeader,
		CommentChar: csvCommentChar,
		SkipLines:   csvSkipLines,
		InferTypes:  csvInferTypes,
	}, nil
}

// inputArg returns the positional input path, "-" (stdin) when absent.
func inputArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "-"
}

// loadDocument reads and parses the input named by args.
func loadDocument(args []string) *value.Value {
	opts, err := loadOptions()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	doc, err := load.Load(inputArg(args), opts)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return doc
}

// loadRecords loads the input and resolves its record set, falling back to
// the whole document as a single record.
func loadRecords(args []string, arrayPath string) (*value.Value, []*value.Value) {
	doc := loadDocument(args)
	records, err := dotpath.RecordsOrSelf(doc, arrayPath)
	if err != nil {
		exitWithError(ExitError, "resolving --array-path: %v", err)
	}
	return doc, records
}

// recordArray wraps a record slice back into an array value for output.
func recordArray(records []*value.Value) *value.Value {
	arr := value.NewArray()
	arr.Items = append(arr.Items, records...)
	return arr
}

// splitFields parses a comma-separated field list, dropping blanks.
func splitFields(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
