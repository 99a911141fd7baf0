package load

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/zaremba/dq/internal/value"
)

// ParseDelimiter interprets the CLI delimiter spelling; "\t" and "tab" mean
// a tab character. Only single-rune delimiters are valid.
func ParseDelimiter(s string) (rune, error) {
	if s == "" || s == "," {
		return ',', nil
	}
	if s == `\t` || s == "tab" {
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return runes[0], nil
}

// delimiterSampleLines caps how many non-blank lines delimiter detection
// inspects.
const delimiterSampleLines = 30

// DetectDelimiter picks the field delimiter among comma, tab, and
// semicolon by parsing a sample of lines with each candidate and scoring
// the modal column count (frequency times width, single-column modes score
// zero). Comma wins when nothing splits.
func DetectDelimiter(text, commentChar string) rune {
	delim, _ := detectDelimiter(text, commentChar)
	return delim
}

func detectDelimiter(text, commentChar string) (rune, int) {
	lines := filterComments(splitLines(strings.TrimPrefix(text, "\ufeff")), commentChar)
	var sample []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, line)
		if len(sample) == delimiterSampleLines {
			break
		}
	}

	best, bestScore := ',', 0
	for _, delim := range []rune{',', '\t', ';'} {
		var counts []int
		for _, line := range sample {
			r := csv.NewReader(strings.NewReader(line))
			r.Comma = delim
			r.FieldsPerRecord = -1
			r.LazyQuotes = true
			row, err := r.Read()
			if err != nil {
				continue
			}
			counts = append(counts, len(row))
		}
		width, freq := modalWidth(counts)
		score := 0
		if width > 1 {
			score = freq * width
		}
		if score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best, bestScore
}

// modalWidth returns the most frequent column count, first seen winning
// ties.
func modalWidth(counts []int) (width, freq int) {
	seen := map[int]int{}
	for _, c := range counts {
		seen[c]++
	}
	for _, c := range counts {
		if seen[c] > freq {
			width, freq = c, seen[c]
		}
	}
	return width, freq
}

var yamlLineRE = regexp.MustCompile(`^\s*(- |[^,\t;]+:(\s|$))`)

// looksTabular reports whether text reads as delimiter-separated rows. A
// first line shaped like a YAML mapping entry or list item disqualifies it.
func looksTabular(text string) bool {
	first, _, _ := strings.Cut(text, "\n")
	if yamlLineRE.MatchString(first) {
		return false
	}
	_, score := detectDelimiter(text, "")
	return score > 0
}

// CSVStats reports what loading had to discard or decide: how many rows
// were dropped for a mismatched width, and the header's column count.
type CSVStats struct {
	SkippedRows     int
	ExpectedColumns int
}

// LoadCSV parses CSV text into an array of row objects keyed by column
// name. Handling order: strip a UTF-8 BOM, drop comment lines, drop leading
// blank lines, then either skip a fixed preamble (Options.SkipLines) or
// locate the header as the first row with the stable column count (the
// modal width among non-blank rows, required in at least 2 rows so a fluke
// wide row is not picked). Rows whose width differs from the header are
// dropped. With NoHeader, columns are synthesized as col0..colN.
func LoadCSV(text string, opts Options) (*value.Value, error) {
	v, _, err := LoadCSVStats(text, opts)
	return v, err
}

// LoadCSVStats is LoadCSV plus the dialect diagnostics validation reports.
// A zero Options.Delimiter means detect it from the content.
func LoadCSVStats(text string, opts Options) (*value.Value, CSVStats, error) {
	delim := opts.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(text, opts.CommentChar)
	}
	text = strings.TrimPrefix(text, "\ufeff")

	lines := splitLines(text)
	lines = filterComments(lines, opts.CommentChar)
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if opts.SkipLines > 0 {
		if opts.SkipLines >= len(lines) {
			lines = nil
		} else {
			lines = lines[opts.SkipLines:]
		}
	}
	if len(lines) == 0 {
		return value.NewArray(), CSVStats{}, nil
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, CSVStats{}, err
	}
	for len(rows) > 0 && blankRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return value.NewArray(), CSVStats{}, nil
	}

	var header []string
	var dataRows [][]string
	switch {
	case opts.NoHeader:
		header = make([]string, len(rows[0]))
		for i := range header {
			header[i] = "col" + strconv.Itoa(i)
		}
		dataRows = rows
	case opts.SkipLines > 0:
		header = rows[0]
		dataRows = rows[1:]
	default:
		idx := findHeaderRow(rows)
		header = rows[idx]
		dataRows = rows[idx+1:]
	}

	stats := CSVStats{ExpectedColumns: len(header)}
	out := value.NewArray()
	for _, row := range dataRows {
		if len(row) != len(header) {
			stats.SkippedRows++ // footer or ragged row
			continue
		}
		obj := value.NewObject()
		for i, col := range header {
			obj.Set(col, cellValue(row[i], opts.InferTypes))
		}
		out.Items = append(out.Items, obj)
	}
	return out, stats, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func filterComments(lines []string, commentChar string) []string {
	if commentChar == "" {
		return lines
	}
	out := lines[:0:0]
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s != "" && strings.HasPrefix(s, commentChar) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// findHeaderRow returns the index of the first row with the stable column
// count: the most frequent width among non-blank rows, preferring a width
// seen at least twice. Falls back to the first row.
func findHeaderRow(rows [][]string) int {
	widthFreq := map[int]int{}
	var widths []int
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		w := len(row)
		if widthFreq[w] == 0 {
			widths = append(widths, w)
		}
		widthFreq[w]++
	}
	if len(widths) == 0 {
		return 0
	}
	best, bestFreq := -1, 0
	for _, w := range widths {
		if widthFreq[w] > bestFreq {
			best, bestFreq = w, widthFreq[w]
		}
	}
	for i, row := range rows {
		if len(row) == best {
			return i
		}
	}
	return 0
}

// cellValue interprets one CSV cell. Without inference every cell is a
// string. With inference, blank cells become null and numeric cells become
// numbers, mirroring the sniffing used for schema and stats reporting.
func cellValue(cell string, infer bool) *value.Value {
	if !infer {
		return value.NewString(cell)
	}
	s := strings.TrimSpace(cell)
	if s == "" {
		return value.Null()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.NewInt(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return value.NewFloat(f)
	}
	return value.NewString(cell)
}

// WriteCSV writes header plus one line per row object. Missing columns
// write as empty cells, extra row fields are ignored, and composite cell
// values serialize as compact JSON.
func WriteCSV(w io.Writer, columns []string, rows []*value.Value, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = ""
			if cell, ok := row.Get(col); ok {
				record[i] = CellString(cell)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CellString renders a value as a CSV cell: null is empty, scalars use
// their literal form, composites use compact JSON.
func CellString(v *value.Value) string {
	switch v.Kind {
	case value.NullType:
		return ""
	case value.ArrayType, value.ObjectType:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return v.StableKey()
	}
}

// WriteJSONL writes each row as one compact JSON line.
func WriteJSONL(w io.Writer, rows []*value.Value) error {
	for _, row := range rows {
		b, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}
