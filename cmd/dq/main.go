// Package main provides the dq CLI entry point.
package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// Persistent flags shared by every subcommand.
var (
	inputFormat   string
	compactOutput bool

	csvDelimiter   string
	csvNoHeader    bool
	csvCommentChar string
	csvSkipLines   int
	csvInferTypes  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dq",
	Short: "Agent-first data inspection and query toolkit",
	Long: `dq inspects, queries, and transforms JSON, YAML, and CSV data.

Every command reads from a file argument or stdin and writes JSON to
stdout by default, so output pipes cleanly into further dq calls or
other tools. Record-oriented commands share one addressing scheme:
dot paths with [N] indices and [*] wildcards, and --array-path to pick
the record set out of a wrapper document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Environment defaults are optional; a missing .env file is fine.
	godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&inputFormat, "format", envDefault("DQ_FORMAT", "auto"),
		"Input format: auto, json, yaml, or csv")
	rootCmd.PersistentFlags().BoolVar(&compactOutput, "compact", envBoolDefault("DQ_COMPACT", false),
		"Emit compact JSON output")
	rootCmd.PersistentFlags().StringVar(&csvDelimiter, "delimiter", envDefault("DQ_DELIMITER", ","),
		"CSV field delimiter (single character or 'tab')")
	rootCmd.PersistentFlags().BoolVar(&csvNoHeader, "no-header", false,
		"Treat CSV input as headerless (columns named col0..colN)")
	rootCmd.PersistentFlags().StringVar(&csvCommentChar, "comment-char", "",
		"Drop CSV lines starting with this character")
	rootCmd.PersistentFlags().IntVar(&csvSkipLines, "skip-lines", 0,
		"Skip this many leading CSV lines before parsing")
	rootCmd.PersistentFlags().BoolVar(&csvInferTypes, "infer-types", false,
		"Infer numeric and null types for CSV cells")
	rootCmd.Version = Version
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBoolDefault(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
