// Package sortrec sorts record sets by field paths with lexicographic or
// numeric key semantics.
package sortrec

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/zaremba/dq/internal/dotpath"
	"github.com/zaremba/dq/internal/value"
)

// Options control a sort run.
type Options struct {
	By      []string
	Desc    bool
	Numeric bool
}

type sortKey struct {
	nums []float64
	strs []string
}

// Sort returns records ordered by the By fields. Lexicographic mode
// compares string forms; numeric mode coerces each key to a float, with
// missing, null, and non-coercible values sorting first (negative
// infinity). Ties keep input order. The input slice is not modified.
func Sort(records []*value.Value, opts Options) ([]*value.Value, error) {
	tokens := make([][]dotpath.Token, len(opts.By))
	for i, field := range opts.By {
		parsed, err := dotpath.Parse(field)
		if err != nil {
			return nil, err
		}
		tokens[i] = parsed
	}

	keys := make([]sortKey, len(records))
	for i, record := range records {
		keys[i] = keyFor(record, tokens, opts.Numeric)
	}

	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		cmp := compareKeys(keys[idx[a]], keys[idx[b]], opts.Numeric)
		if opts.Desc {
			return cmp > 0
		}
		return cmp < 0
	})

	out := make([]*value.Value, len(records))
	for n, i := range idx {
		out[n] = records[i]
	}
	return out, nil
}

func keyFor(record *value.Value, tokens [][]dotpath.Token, numeric bool) sortKey {
	key := sortKey{}
	for _, field := range tokens {
		var v *value.Value
		if matches := dotpath.Extract(record, field); len(matches) > 0 {
			v = matches[0]
		}
		if numeric {
			key.nums = append(key.nums, numericKey(v))
		} else {
			key.strs = append(key.strs, stringKey(v))
		}
	}
	return key
}

func numericKey(v *value.Value) float64 {
	if v == nil {
		return math.Inf(-1)
	}
	switch v.Kind {
	case value.IntType:
		return float64(v.Int)
	case value.FloatType:
		return v.Float
	case value.BoolType:
		if v.Bool {
			return 1
		}
		return 0
	case value.StringType:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64); err == nil {
			return f
		}
	}
	return math.Inf(-1)
}

// stringKey renders the value's canonical form; missing and null sort as
// the empty string.
func stringKey(v *value.Value) string {
	if v == nil || v.Kind == value.NullType {
		return ""
	}
	return v.StableKey()
}

func compareKeys(a, b sortKey, numeric bool) int {
	if numeric {
		for i := range a.nums {
			if a.nums[i] < b.nums[i] {
				return -1
			}
			if a.nums[i] > b.nums[i] {
				return 1
			}
		}
		return 0
	}
	for i := range a.strs {
		if c := strings.Compare(a.strs[i], b.strs[i]); c != 0 {
			return c
		}
	}
	return 0
}
