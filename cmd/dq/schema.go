package main

import (
	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/dotpath"
	"github.com/zaremba/dq/internal/schema"
)

var (
	schemaArrayPath string
	schemaDepth     int
	schemaCounts    bool
)

func init() {
	schemaCmd.Flags().StringVar(&schemaArrayPath, "array-path", "", "Path to an array (or object-of-objects) to summarize")
	schemaCmd.Flags().IntVar(&schemaDepth, "depth", 6, "Maximum nesting depth to inspect")
	schemaCmd.Flags().BoolVar(&schemaCounts, "counts", false, "Include field presence/count metadata")
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema [input]",
	Short: "Infer a practical schema summary",
	Long: `Infer a structural schema: field types per object, element types and
a merged item schema per array of records.

Examples:
  dq schema data.json
  dq schema data.json --array-path results --counts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	doc := loadDocument(args)
	if schemaArrayPath != "" {
		records, err := dotpath.Records(doc, schemaArrayPath)
		if err != nil {
			exitWithError(ExitError, "resolving --array-path: %v", err)
		}
		if len(records) > 0 {
			doc = recordArray(records)
		}
	}
	return writeJSON(schema.Infer(doc, schemaDepth, schemaCounts))
}
