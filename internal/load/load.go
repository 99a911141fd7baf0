// Package load reads documents from files or standard input and parses
// them into value trees, handling JSON, YAML, and CSV with real-world
// dialect noise (comment lines, preamble junk, ragged rows).
package load

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zaremba/dq/internal/value"
)

// Format names an input format.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a CLI format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatAuto, FormatJSON, FormatYAML, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (use auto, json, yaml, or csv)", s)
}

// Options control loading. Delimiter, NoHeader, CommentChar, SkipLines,
// and InferTypes apply to CSV input only.
type Options struct {
	Format      Format
	Delimiter   rune
	NoHeader    bool
	CommentChar string
	SkipLines   int
	InferTypes  bool
}

// ReadSource reads path fully; "-" or the empty string reads stdin.
func ReadSource(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Detect resolves FormatAuto: a recognized file extension decides, and
// stdin or an unknown extension falls back to sniffing the content.
func Detect(path string, data []byte, format Format) Format {
	if format != FormatAuto && format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv", ".tsv":
		return FormatCSV
	}
	return Sniff(data)
}

// Sniff guesses the format from content alone. Anything that decodes as
// JSON (or opens with a brace or bracket) is JSON; delimiter-consistent
// line data is CSV; everything else is YAML, which subsumes plain scalars.
func Sniff(data []byte) Format {
	text := strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff"))
	if text == "" {
		return FormatJSON
	}
	if text[0] == '{' || text[0] == '[' {
		return FormatJSON
	}
	if _, err := value.Decode([]byte(text)); err == nil {
		return FormatJSON
	}
	if looksTabular(text) {
		return FormatCSV
	}
	return FormatYAML
}

// Load reads and parses one document.
func Load(path string, opts Options) (*value.Value, error) {
	data, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data, opts)
}

// Parse decodes already-read bytes according to the options, with the path
// consulted only for format detection.
func Parse(path string, data []byte, opts Options) (*value.Value, error) {
	switch Detect(path, data, opts.Format) {
	case FormatYAML:
		v, err := value.DecodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		return v, nil
	case FormatCSV:
		v, err := LoadCSV(string(data), opts)
		if err != nil {
			return nil, fmt.Errorf("parsing CSV: %w", err)
		}
		return v, nil
	default:
		v, err := value.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return v, nil
	}
}
