package main

import (
	"github.com/spf13/cobra"

	"github.com/zaremba/dq/internal/load"
	"github.com/zaremba/dq/internal/probe"
)

var probeSample int

func init() {
	probeCmd.Flags().IntVar(&probeSample, "sample", 20, "Number of records to sample for field discovery")
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe [input]",
	Short: "Detect document layout and summarize its record set",
	Long: `Probe a document's structure before committing to extraction flags.

Reports the layout (array, object-of-objects, nested-array, object, or
scalar), the recommended --array-path, and the record fields with their
observed types from a sample of records.

Examples:
  dq probe data.json
  dq probe export.csv --sample 100`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProbe,
}

// ProbeReport is the probe command's JSON output.
type ProbeReport struct {
	Valid         bool                `json:"valid"`
	Error         string              `json:"error,omitempty"`
	TopLevelType  string              `json:"top_level_type,omitempty"`
	Layout        string              `json:"layout,omitempty"`
	RecordCount   int                 `json:"record_count"`
	ArrayPath     *string             `json:"recommended_array_path"`
	SizeBytes     int                 `json:"size_bytes"`
	SampleKeys    []string            `json:"sample_keys,omitempty"`
	TopLevelField []string            `json:"top_level_fields,omitempty"`
	RecordFields  []string            `json:"record_fields"`
	FieldTypes    map[string][]string `json:"field_types,omitempty"`
}

func runProbe(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	data, err := load.ReadSource(inputArg(args))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	doc, err := load.Parse(inputArg(args), data, opts)
	if err != nil {
		return writeJSON(ProbeReport{Error: err.Error(), SizeBytes: len(data), RecordFields: []string{}})
	}

	layout := probe.DetectLayout(doc)
	report := ProbeReport{
		Valid:         true,
		TopLevelType:  doc.TypeName(),
		Layout:        layout.Layout,
		RecordCount:   layout.RecordCount,
		SizeBytes:     len(data),
		SampleKeys:    layout.SampleKeys,
		TopLevelField: layout.TopLevelField,
		RecordFields:  probe.RecordFields(layout.Records, probeSample),
	}
	if layout.ArrayPath != "" {
		report.ArrayPath = &layout.ArrayPath
	}
	if report.RecordFields == nil {
		report.RecordFields = []string{}
	}
	if len(report.RecordFields) > 0 {
		report.FieldTypes = probe.FieldTypes(layout.Records, report.RecordFields, probeSample)
	}
	return writeJSON(report)
}
