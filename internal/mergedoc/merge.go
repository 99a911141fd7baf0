// Package mergedoc combines multiple documents: array concatenation with
// optional keyed deduplication, and shallow or deep object merging.
package mergedoc

import (
	"github.com/zaremba/dq/internal/dotpath"
	"github.com/zaremba/dq/internal/value"
)

// Concat appends the elements of every array document in order, skipping
// non-array documents. With uniqueBy, elements whose value at that path
// shares a canonical form with an earlier element are dropped; elements
// missing the path dedupe under the null form.
func Concat(docs []*value.Value, uniqueBy string) (*value.Value, error) {
	out := value.NewArray()
	for _, doc := range docs {
		if doc.Kind != value.ArrayType {
			continue
		}
		out.Items = append(out.Items, doc.Items...)
	}
	if uniqueBy == "" {
		return out, nil
	}

	tokens, err := dotpath.Parse(uniqueBy)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	deduped := value.NewArray()
	for _, item := range out.Items {
		key := "null"
		if matches := dotpath.Extract(item, tokens); len(matches) > 0 {
			key = matches[0].StableKey()
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped.Items = append(deduped.Items, item)
	}
	return deduped, nil
}

// Shallow merges object documents left to right: later keys replace
// earlier values whole, keeping the first occurrence's position.
// Non-object documents are skipped.
func Shallow(docs []*value.Value) *value.Value {
	out := value.NewObject()
	for _, doc := range docs {
		if doc.Kind != value.ObjectType {
			continue
		}
		for i, key := range doc.Keys {
			out.Set(key, doc.Vals[i].Clone())
		}
	}
	return out
}

// Deep merges object documents left to right, recursing into objects held
// under the same key and concatenating arrays; any other collision is won
// by the later value. Non-object documents are skipped.
func Deep(docs []*value.Value) *value.Value {
	out := value.NewObject()
	for _, doc := range docs {
		if doc.Kind != value.ObjectType {
			continue
		}
		merged := mergeValues(out, doc)
		out = merged
	}
	return out
}

func mergeValues(left, right *value.Value) *value.Value {
	if left.Kind == value.ObjectType && right.Kind == value.ObjectType {
		merged := left.Clone()
		for i, key := range right.Keys {
			if existing, ok := merged.Get(key); ok {
				merged.Set(key, mergeValues(existing, right.Vals[i]))
			} else {
				merged.Set(key, right.Vals[i].Clone())
			}
		}
		return merged
	}
	if left.Kind == value.ArrayType && right.Kind == value.ArrayType {
		out := left.Clone()
		out.Items = append(out.Items, right.Clone().Items...)
		return out
	}
	return right.Clone()
}
