package main

import (
	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/dotpath"
	"github.com/zaremba/dq/internal/flatten"
	"github.com/zaremba/dq/internal/value"
)

var (
	flattenArrayPath string
	flattenSeparator string
	flattenArrayMode string
)

func init() {
	flattenCmd.Flags().StringVar(&flattenArrayPath, "array-path", "", "Path to array or value to flatten")
	flattenCmd.Flags().StringVar(&flattenSeparator, "separator", ".", "Separator used in flattened keys")
	flattenCmd.Flags().StringVar(&flattenArrayMode, "array-mode", "index", "Array handling: index, ignore, or expand")
	rootCmd.AddCommand(flattenCmd)
}

var flattenCmd = &cobra.Command{
	Use:   "flatten [input]",
	Short: "Flatten nested structures into dot-notation keys",
	Long: `Flatten nested data into a single-level object keyed by paths.

Array modes: index writes key[0], key[1], ...; ignore keeps arrays
whole; expand keeps scalar arrays whole but recurses into composite
elements without changing the prefix. An array document (or an array
resolved via --array-path) flattens per element.

Examples:
  dq flatten data.json
  dq flatten data.json --array-mode ignore
  dq flatten config.yaml --separator _`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFlatten,
}

func runFlatten(cmd *cobra.Command, args []string) error {
	mode, err := flatten.ParseArrayMode(flattenArrayMode)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	doc := loadDocument(args)
	target := doc
	if flattenArrayPath != "" {
		records, err := dotpath.Records(doc, flattenArrayPath)
		if err != nil {
			exitWithError(ExitError, "resolving --array-path: %v", err)
		}
		// An unresolvable path falls back to flattening the whole document.
		if len(records) > 0 {
			target = recordArray(records)
		}
	}

	if target.Kind == value.ArrayType {
		out := value.NewArray()
		for _, item := range target.Items {
			out.Items = append(out.Items, flatten.Flatten(item, flattenSeparator, mode))
		}
		return writeJSON(out)
	}
	return writeJSON(flatten.Flatten(target, flattenSeparator, mode))
}
