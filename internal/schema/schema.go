// Package schema infers a practical structural summary of a value tree:
// per-field types for objects, size and element types for arrays, and a
// merged item schema for arrays of records.
package schema

import (
	"fmt"
	"sort"

	"github.com/zaremba/dq/internal/value"
)

// Infer summarizes v down to depth levels. Past the depth limit only the
// type tag is reported. With counts, objects carry field_count and merged
// array-item fields carry a "present/total" presence ratio.
func Infer(v *value.Value, depth int, counts bool) *value.Value {
	if depth < 0 {
		return typeOnly(v)
	}

	switch v.Kind {
	case value.ObjectType:
		fields := value.NewObject()
		for i, key := range v.Keys {
			fields.Set(key, Infer(v.Vals[i], depth-1, counts))
		}
		out := value.NewObject()
		out.Set("type", value.NewString("object"))
		out.Set("fields", fields)
		if counts {
			out.Set("field_count", value.NewInt(int64(len(v.Keys))))
		}
		return out

	case value.ArrayType:
		out := value.NewObject()
		out.Set("type", value.NewString("array"))
		out.Set("size", value.NewInt(int64(len(v.Items))))
		out.Set("item_types", itemTypes(v.Items))
		if len(v.Items) > 0 && depth > 0 {
			if allObjects(v.Items) {
				out.Set("item_schema", mergedItemSchema(v.Items, depth, counts))
			} else {
				out.Set("item_schema", Infer(v.Items[0], depth-1, counts))
			}
		}
		return out
	}

	return typeOnly(v)
}

func typeOnly(v *value.Value) *value.Value {
	out := value.NewObject()
	out.Set("type", value.NewString(v.TypeName()))
	return out
}

func itemTypes(items []*value.Value) *value.Value {
	out := value.NewArray()
	for _, tag := range value.UniqueTypes(items) {
		out.Items = append(out.Items, value.NewString(tag))
	}
	return out
}

func allObjects(items []*value.Value) bool {
	for _, item := range items {
		if item.Kind != value.ObjectType {
			return false
		}
	}
	return true
}

// mergedItemSchema folds the keys of every record into one object schema,
// describing each field from its first occurrence. Keys are sorted so
// heterogeneous records produce stable output.
func mergedItemSchema(items []*value.Value, depth int, counts bool) *value.Value {
	presence := map[string]int{}
	first := map[string]*value.Value{}
	for _, item := range items {
		for i, key := range item.Keys {
			if presence[key] == 0 {
				first[key] = item.Vals[i]
			}
			presence[key]++
		}
	}
	keys := make([]string, 0, len(presence))
	for key := range presence {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := value.NewObject()
	for _, key := range keys {
		field := Infer(first[key], depth-1, counts)
		if counts {
			field.Set("presence", value.NewString(
				fmt.Sprintf("%d/%d", presence[key], len(items))))
		}
		fields.Set(key, field)
	}
	out := value.NewObject()
	out.Set("type", value.NewString("object"))
	out.Set("fields", fields)
	return out
}
