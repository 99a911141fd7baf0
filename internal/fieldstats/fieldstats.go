// Package fieldstats summarizes record fields: presence, type spread,
// distinct-value counts, frequent values, and numeric ranges.
package fieldstats

import (
	"fmt"
	"sort"

	"github.com/zaremba/dq/internal/dotpath"
	"github.com/zaremba/dq/internal/value"
)

// Analyze summarizes the given field paths over records. With no fields,
// the sorted union of top-level record keys is analyzed. top caps the
// frequent-value list per field. The result holds record_count,
// field_count, and a per-field object.
func Analyze(records []*value.Value, fields []string, top int) (*value.Value, error) {
	if len(fields) == 0 {
		fields = topLevelFields(records)
	}

	stats := value.NewObject()
	for _, field := range fields {
		tokens, err := dotpath.Parse(field)
		if err != nil {
			return nil, err
		}
		stats.Set(field, analyzeField(records, tokens, top))
	}

	out := value.NewObject()
	out.Set("record_count", value.NewInt(int64(len(records))))
	out.Set("field_count", value.NewInt(int64(len(fields))))
	out.Set("fields", stats)
	return out, nil
}

func topLevelFields(records []*value.Value) []string {
	seen := map[string]bool{}
	var fields []string
	for _, record := range records {
		if record.Kind != value.ObjectType {
			continue
		}
		for _, key := range record.Keys {
			if !seen[key] {
				seen[key] = true
				fields = append(fields, key)
			}
		}
	}
	sort.Strings(fields)
	return fields
}

// analyzeField collects every match of the field path across records.
// Wildcard paths may contribute several values per record; presence counts
// records, not values.
func analyzeField(records []*value.Value, tokens []dotpath.Token, top int) *value.Value {
	var values []*value.Value
	presence := 0
	for _, record := range records {
		found := dotpath.Extract(record, tokens)
		if len(found) > 0 {
			presence++
			values = append(values, found...)
		}
	}

	freq := value.Frequency(values)
	entry := value.NewObject()
	entry.Set("presence", value.NewString(fmt.Sprintf("%d/%d", presence, len(records))))
	entry.Set("types", typeList(values))
	entry.Set("unique_values", value.NewInt(int64(freq.Len())))
	if !hasComposite(values) {
		entry.Set("top_values", topValues(freq, top))
	}
	if numeric := numericSummary(values); numeric != nil {
		entry.Set("numeric", numeric)
	}
	return entry
}

func typeList(values []*value.Value) *value.Value {
	out := value.NewArray()
	for _, tag := range value.UniqueTypes(values) {
		out.Items = append(out.Items, value.NewString(tag))
	}
	return out
}

func hasComposite(values []*value.Value) bool {
	for _, v := range values {
		if v.Kind == value.ArrayType || v.Kind == value.ObjectType {
			return true
		}
	}
	return false
}

func topValues(freq *value.FreqTable, top int) *value.Value {
	if top < 0 {
		top = 0
	}
	out := value.NewArray()
	for _, e := range freq.MostCommon(top) {
		row := value.NewObject()
		row.Set("value", freq.Sample(e.Key))
		row.Set("count", value.NewInt(int64(e.Count)))
		out.Items = append(out.Items, row)
	}
	return out
}

// numericSummary reports count, min, max, and mean over the numeric
// values; nil when no value is numeric.
func numericSummary(values []*value.Value) *value.Value {
	var nums []float64
	for _, v := range values {
		switch v.Kind {
		case value.IntType:
			nums = append(nums, float64(v.Int))
		case value.FloatType:
			nums = append(nums, v.Float)
		}
	}
	if len(nums) == 0 {
		return nil
	}
	min, max, sum := nums[0], nums[0], 0.0
	for _, n := range nums {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
		sum += n
	}
	out := value.NewObject()
	out.Set("count", value.NewInt(int64(len(nums))))
	out.Set("min", value.NewFloat(min))
	out.Set("max", value.NewFloat(max))
	out.Set("mean", value.NewFloat(sum/float64(len(nums))))
	return out
}
