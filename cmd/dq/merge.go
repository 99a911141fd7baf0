package main

import (
	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/load"
	"github.com/zaremba/dq/internal/mergedoc"
	"github.com/zaremba/dq/internal/value"
)

var (
	mergeMode     string
	mergeUniqueBy string
)

func init() {
	mergeCmd.Flags().StringVar(&mergeMode, "mode", "concat", "Merge mode: concat, shallow, or deep")
	mergeCmd.Flags().StringVar(&mergeUniqueBy, "unique-by", "", "Field path used to deduplicate in concat mode")
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge <input>...",
	Short: "Merge or concatenate multiple documents",
	Long: `Merge documents in argument order. concat appends array documents
(optionally deduplicating with --unique-by); shallow and deep merge
object documents, with deep recursing into shared keys and
concatenating arrays.

Examples:
  dq merge a.json b.json
  dq merge a.json b.json --unique-by id
  dq merge base.yaml override.yaml --mode deep`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	docs := make([]*value.Value, len(args))
	for i, path := range args {
		docs[i] = loadOne(path, opts)
	}

	var result *value.Value
	switch mergeMode {
	case "concat":
		result, err = mergedoc.Concat(docs, mergeUniqueBy)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
	case "shallow":
		result = mergedoc.Shallow(docs)
	case "deep":
		result = mergedoc.Deep(docs)
	default:
		exitWithError(ExitError, "--mode must be concat, shallow, or deep, got %q", mergeMode)
	}
	return writeJSON(result)
}

// loadOne loads a single named input with shared options, exiting on error.
func loadOne(path string, opts load.Options) *value.Value {
	doc, err := load.Load(path, opts)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return doc
}
