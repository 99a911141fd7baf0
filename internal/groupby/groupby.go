// Package groupby buckets records by field values and computes per-group
// aggregations.
package groupby

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zaremba/dq/internal/dotpath"
	"github.com/zaremba/dq/internal/value"
)

// Agg is one aggregation to compute per group. A bare record count has an
// empty Field and Func "count".
type Agg struct {
	Field string
	Func  string
}

var allowedFuncs = map[string]bool{
	"count": true, "sum": true, "min": true, "max": true,
	"mean": true, "list": true, "unique": true,
}

// ParseAgg parses "count" or "field:func" specs.
func ParseAgg(spec string) (Agg, error) {
	if strings.ToLower(strings.TrimSpace(spec)) == "count" {
		return Agg{Func: "count"}, nil
	}
	idx := strings.LastIndex(spec, ":")
	if idx < 0 {
		return Agg{}, fmt.Errorf("invalid --agg spec %q, use field:func or count", spec)
	}
	fn := strings.ToLower(strings.TrimSpace(spec[idx+1:]))
	if !allowedFuncs[fn] {
		return Agg{}, fmt.Errorf("unknown aggregation %q (use count, sum, min, max, mean, list, or unique)", fn)
	}
	return Agg{Field: strings.TrimSpace(spec[:idx]), Func: fn}, nil
}

// ParseFields splits a comma-separated field list, dropping blanks.
func ParseFields(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Options configure a grouping run.
type Options struct {
	By     []string
	Aggs   []Agg
	SortBy string // "count" (desc) or "key" (asc)
	Top    int    // <0 keeps all groups
}

type bucket struct {
	keyParts []*value.Value
	records  []*value.Value
	sortKey  string
}

// Group buckets records by the By fields and emits an object holding
// total_records, total_groups, and one row per group. Rows carry the key
// fields, the record count, and one "field:func" entry per aggregation.
// Groups appear in first-seen order before sorting.
func Group(records []*value.Value, opts Options) (*value.Value, error) {
	byTokens := make([][]dotpath.Token, len(opts.By))
	for i, field := range opts.By {
		tokens, err := dotpath.Parse(field)
		if err != nil {
			return nil, err
		}
		byTokens[i] = tokens
	}
	aggs := opts.Aggs
	if len(aggs) == 0 {
		aggs = []Agg{{Func: "count"}}
	}
	aggTokens := make([][]dotpath.Token, len(aggs))
	for i, agg := range aggs {
		tokens, err := dotpath.Parse(agg.Field)
		if err != nil {
			return nil, err
		}
		aggTokens[i] = tokens
	}

	buckets := map[string]*bucket{}
	var order []string
	for _, record := range records {
		parts := make([]*value.Value, len(byTokens))
		keyBits := make([]string, len(byTokens))
		for i, tokens := range byTokens {
			v := firstMatch(record, tokens)
			parts[i] = v
			keyBits[i] = v.TypeName() + "\x00" + v.StableKey()
		}
		key := strings.Join(keyBits, "\x01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{keyParts: parts, sortKey: groupSortKey(parts)}
			buckets[key] = b
			order = append(order, key)
		}
		b.records = append(b.records, record)
	}

	rows := make([]*value.Value, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		row := value.NewObject()
		for i, field := range opts.By {
			row.Set(field, b.keyParts[i])
		}
		row.Set("count", value.NewInt(int64(len(b.records))))
		for i, agg := range aggs {
			if agg.Field == "" && agg.Func == "count" {
				continue
			}
			values := collectField(b.records, aggTokens[i])
			row.Set(agg.Field+":"+agg.Func, computeAgg(values, agg.Func))
		}
		rows = append(rows, row)
	}

	sortRows(rows, buckets, order, opts.SortBy)
	if opts.Top >= 0 && opts.Top < len(rows) {
		rows = rows[:opts.Top]
	}

	out := value.NewObject()
	out.Set("total_records", value.NewInt(int64(len(records))))
	out.Set("total_groups", value.NewInt(int64(len(buckets))))
	groups := value.NewArray()
	groups.Items = rows
	out.Set("groups", groups)
	return out, nil
}

// firstMatch resolves the first value at tokens, null when nothing matches.
func firstMatch(record *value.Value, tokens []dotpath.Token) *value.Value {
	if matches := dotpath.Extract(record, tokens); len(matches) > 0 {
		return matches[0]
	}
	return value.Null()
}

// collectField gathers the first value per record, skipping records where
// the field is missing or null.
func collectField(records []*value.Value, tokens []dotpath.Token) []*value.Value {
	var out []*value.Value
	for _, record := range records {
		matches := dotpath.Extract(record, tokens)
		if len(matches) == 0 || matches[0].Kind == value.NullType {
			continue
		}
		out = append(out, matches[0])
	}
	return out
}

func computeAgg(values []*value.Value, fn string) *value.Value {
	switch fn {
	case "count":
		return value.NewInt(int64(len(values)))
	case "list":
		out := value.NewArray()
		out.Items = append(out.Items, values...)
		return out
	case "unique":
		out := value.NewArray()
		seen := map[string]bool{}
		for _, v := range values {
			key := v.TypeName() + "\x00" + v.StableKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			out.Items = append(out.Items, v)
		}
		return out
	}
	return numericAgg(values, fn)
}

// numericAgg computes sum/min/max/mean over the numeric values, preserving
// int results when every input is an int. Null when no value is numeric.
func numericAgg(values []*value.Value, fn string) *value.Value {
	var nums []*value.Value
	allInt := true
	for _, v := range values {
		switch v.Kind {
		case value.IntType:
			nums = append(nums, v)
		case value.FloatType:
			nums = append(nums, v)
			allInt = false
		}
	}
	if len(nums) == 0 {
		return value.Null()
	}

	switch fn {
	case "sum":
		if allInt {
			var total int64
			for _, v := range nums {
				total += v.Int
			}
			return value.NewInt(total)
		}
		return value.NewFloat(floatSum(nums))
	case "mean":
		return value.NewFloat(floatSum(nums) / float64(len(nums)))
	case "min", "max":
		best := nums[0]
		for _, v := range nums[1:] {
			less := asFloat(v) < asFloat(best)
			if (fn == "min") == less {
				best = v
			}
		}
		return best
	}
	return value.Null()
}

func floatSum(nums []*value.Value) float64 {
	var total float64
	for _, v := range nums {
		total += asFloat(v)
	}
	return total
}

func asFloat(v *value.Value) float64 {
	if v.Kind == value.IntType {
		return float64(v.Int)
	}
	return v.Float
}

// groupSortKey orders groups by their key parts when sorting by key.
func groupSortKey(parts []*value.Value) string {
	bits := make([]string, len(parts))
	for i, v := range parts {
		if v.Kind == value.NullType {
			bits[i] = ""
			continue
		}
		bits[i] = v.StableKey()
	}
	return strings.Join(bits, "\x01")
}

func sortRows(rows []*value.Value, buckets map[string]*bucket, order []string, sortBy string) {
	sortKeys := make([]string, len(rows))
	counts := make([]int64, len(rows))
	for i, key := range order {
		sortKeys[i] = buckets[key].sortKey
		if c, ok := rows[i].Get("count"); ok {
			counts[i] = c.Int
		}
	}
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	if sortBy == "key" {
		sort.SliceStable(idx, func(a, b int) bool { return sortKeys[idx[a]] < sortKeys[idx[b]] })
	} else {
		sort.SliceStable(idx, func(a, b int) bool { return counts[idx[a]] > counts[idx[b]] })
	}
	sorted := make([]*value.Value, len(rows))
	for n, i := range idx {
		sorted[n] = rows[i]
	}
	copy(rows, sorted)
}
