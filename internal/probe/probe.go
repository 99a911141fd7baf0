// Package probe detects the structural layout of a document and summarizes
// its record set, so callers can pick extraction parameters without
// reading the data first.
package probe

import (
	"sort"

	"github.com/zaremba/dq/internal/value"
)

// Layout names.
const (
	LayoutArray           = "array"
	LayoutObjectOfObjects = "object-of-objects"
	LayoutNestedArray     = "nested-array"
	LayoutObject          = "object"
	LayoutScalar          = "scalar"
)

// objectRatioThreshold is the fraction of mapping values that must be
// objects for the object-of-objects layout to apply.
const objectRatioThreshold = 0.8

// Report describes a probed document.
type Report struct {
	Layout        string
	RecordCount   int
	ArrayPath     string // recommended record path, "" when none
	Records       []*value.Value
	SampleKeys    []string // object-of-objects: first keys in document order
	TopLevelField []string // nested-array and object layouts: sorted keys
}

// sampleKeyLimit caps how many record keys an object-of-objects report lists.
const sampleKeyLimit = 10

// DetectLayout classifies the document shape and pulls out its record set.
func DetectLayout(doc *value.Value) Report {
	switch doc.Kind {
	case value.ArrayType:
		return Report{
			Layout:      LayoutArray,
			RecordCount: len(doc.Items),
			Records:     doc.Items,
		}

	case value.ObjectType:
		if isObjectOfObjects(doc) {
			keys := doc.Keys
			if len(keys) > sampleKeyLimit {
				keys = keys[:sampleKeyLimit]
			}
			return Report{
				Layout:      LayoutObjectOfObjects,
				RecordCount: len(doc.Vals),
				ArrayPath:   ".",
				Records:     doc.Vals,
				SampleKeys:  append([]string(nil), keys...),
			}
		}
		if key, arr := largestArrayChild(doc); key != "" {
			return Report{
				Layout:        LayoutNestedArray,
				RecordCount:   len(arr.Items),
				ArrayPath:     key,
				Records:       arr.Items,
				TopLevelField: sortedKeys(doc),
			}
		}
		return Report{
			Layout:        LayoutObject,
			RecordCount:   1,
			Records:       []*value.Value{doc},
			TopLevelField: sortedKeys(doc),
		}
	}

	return Report{Layout: LayoutScalar}
}

// isObjectOfObjects reports whether at least 80% of a non-empty mapping's
// values are themselves mappings.
func isObjectOfObjects(doc *value.Value) bool {
	if len(doc.Vals) == 0 {
		return false
	}
	objects := 0
	for _, v := range doc.Vals {
		if v.Kind == value.ObjectType {
			objects++
		}
	}
	return float64(objects)/float64(len(doc.Vals)) >= objectRatioThreshold
}

// largestArrayChild returns the key and value of the biggest non-empty
// array child, the likely record set of a wrapper object.
func largestArrayChild(doc *value.Value) (string, *value.Value) {
	var bestKey string
	var best *value.Value
	for i, key := range doc.Keys {
		v := doc.Vals[i]
		if v.Kind != value.ArrayType {
			continue
		}
		if best == nil || len(v.Items) > len(best.Items) {
			bestKey, best = key, v
		}
	}
	if best == nil || len(best.Items) == 0 {
		return "", nil
	}
	return bestKey, best
}

func sortedKeys(doc *value.Value) []string {
	keys := append([]string(nil), doc.Keys...)
	sort.Strings(keys)
	return keys
}

// RecordFields lists field names seen across up to sample object records,
// most frequent first with first-seen order breaking ties.
func RecordFields(records []*value.Value, sample int) []string {
	freq := value.Frequency(nil)
	inspected := 0
	for _, record := range records {
		if record.Kind != value.ObjectType {
			continue
		}
		for _, key := range record.Keys {
			freq.Add(value.NewString(key))
		}
		inspected++
		if inspected >= sample {
			break
		}
	}
	var out []string
	for _, entry := range freq.MostCommon(-1) {
		out = append(out, entry.Key)
	}
	return out
}

// FieldTypes maps each listed field to the sorted set of type tags it
// carries across up to sample object records.
func FieldTypes(records []*value.Value, fields []string, sample int) map[string][]string {
	sets := map[string]map[string]bool{}
	inspected := 0
	for _, record := range records {
		if record.Kind != value.ObjectType {
			continue
		}
		for _, field := range fields {
			if v, ok := record.Get(field); ok {
				if sets[field] == nil {
					sets[field] = map[string]bool{}
				}
				sets[field][v.TypeName()] = true
			}
		}
		inspected++
		if inspected >= sample {
			break
		}
	}
	out := make(map[string][]string, len(sets))
	for field, tags := range sets {
		var sorted []string
		for tag := range tags {
			sorted = append(sorted, tag)
		}
		sort.Strings(sorted)
		out[field] = sorted
	}
	return out
}
