package value

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// TypeName classifies v into one of the tags
// null|bool|int|float|string|array|object. The int/float split is
// structural: any number with no fractional part reports "int".
func (v *Value) TypeName() string {
	if v.Kind == FloatType {
		if !math.IsInf(v.Float, 0) && !math.IsNaN(v.Float) && v.Float == math.Trunc(v.Float) {
			return "int"
		}
		return "float"
	}
	return v.Kind.String()
}

// UniqueTypes returns the sorted distinct type tags across values.
func UniqueTypes(values []*Value) []string {
	seen := map[string]bool{}
	var tags []string
	for _, v := range values {
		tag := v.TypeName()
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// StableKey returns a deterministic string form of v used for grouping,
// deduplication, and set-style comparison. Scalars render as bare literals
// (strings verbatim); composites render as canonical JSON with object keys
// sorted recursively and array order preserved. Two values that are
// structurally equal up to object key order produce identical keys.
func (v *Value) StableKey() string {
	switch v.Kind {
	case NullType:
		return "null"
	case BoolType:
		return strconv.FormatBool(v.Bool)
	case IntType:
		return strconv.FormatInt(v.Int, 10)
	case FloatType:
		return formatNumber(v.Float)
	case StringType:
		return v.Str
	}
	var buf bytes.Buffer
	v.canonical(&buf)
	return buf.String()
}

// formatNumber renders a float without an exponent and without a trailing
// fractional part when it is integer-valued, so 2 and 2.0 share a key.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v *Value) canonical(buf *bytes.Buffer) {
	switch v.Kind {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case IntType:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case FloatType:
		buf.WriteString(formatNumber(v.Float))
	case StringType:
		b, _ := json.Marshal(v.Str)
		buf.Write(b)
	case ArrayType:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.canonical(buf)
		}
		buf.WriteByte(']')
	case ObjectType:
		idx := make([]int, len(v.Keys))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool { return v.Keys[idx[a]] < v.Keys[idx[b]] })
		buf.WriteByte('{')
		for n, i := range idx {
			if n > 0 {
				buf.WriteByte(',')
			}
			b, _ := json.Marshal(v.Keys[i])
			buf.Write(b)
			buf.WriteByte(':')
			v.Vals[i].canonical(buf)
		}
		buf.WriteByte('}')
	}
}

// FreqEntry is one stable key with its occurrence count.
type FreqEntry struct {
	Key   string
	Count int
}

// FreqTable counts values by stable key, remembering first-seen order and a
// representative value per key.
type FreqTable struct {
	counts  map[string]int
	order   []string
	samples map[string]*Value
}

// Frequency builds a frequency table over values.
func Frequency(values []*Value) *FreqTable {
	t := &FreqTable{counts: map[string]int{}, samples: map[string]*Value{}}
	for _, v := range values {
		t.Add(v)
	}
	return t
}

// Add counts one value.
func (t *FreqTable) Add(v *Value) {
	key := v.StableKey()
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
		t.samples[key] = v
	}
	t.counts[key]++
}

// Len returns the number of distinct keys.
func (t *FreqTable) Len() int { return len(t.order) }

// Sample returns the first value counted under key.
func (t *FreqTable) Sample(key string) *Value { return t.samples[key] }

// MostCommon returns up to n entries ordered by count descending, with ties
// broken by first-seen order. n < 0 returns all entries.
func (t *FreqTable) MostCommon(n int) []FreqEntry {
	entries := make([]FreqEntry, 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, FreqEntry{Key: key, Count: t.counts[key]})
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Count > entries[b].Count
	})
	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
