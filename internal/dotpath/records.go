package dotpath

import "github.com/zaremba/dq/internal/value"

// Records resolves the record array a command iterates over.
//
// With a path, the first match that is an array wins. Failing that, the
// first non-empty mapping match whose values are all mappings is treated as
// an object-of-objects record set and its values are returned in key order.
// A mapping with scalar values is not a record set. Without a path, an
// array document is its own record set. Anything else resolves to empty;
// the degenerate single-record case belongs to RecordsOrSelf.
func Records(doc *value.Value, arrayPath string) ([]*value.Value, error) {
	if arrayPath != "" {
		matches, err := ExtractPath(doc, arrayPath)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if m.Kind == value.ArrayType {
				return m.Items, nil
			}
		}
		for _, m := range matches {
			if m.Kind == value.ObjectType && len(m.Vals) > 0 && allObjects(m.Vals) {
				return m.Vals, nil
			}
		}
		return nil, nil
	}
	if doc.Kind == value.ArrayType {
		return doc.Items, nil
	}
	return nil, nil
}

// RecordsOrSelf applies the caller-side fallback shared by every command:
// when resolution is empty and the document itself is not an array, the
// whole document is a single-record array.
func RecordsOrSelf(doc *value.Value, arrayPath string) ([]*value.Value, error) {
	rows, err := Records(doc, arrayPath)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 && doc.Kind != value.ArrayType {
		return []*value.Value{doc}, nil
	}
	return rows, nil
}

func allObjects(vals []*value.Value) bool {
	for _, v := range vals {
		if v.Kind != value.ObjectType {
			return false
		}
	}
	return true
}
