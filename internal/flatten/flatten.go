// Package flatten collapses nested value trees into single-level mappings
// keyed by composite path strings like a.b[0].c.
package flatten

import (
	"fmt"
	"strconv"

	"github.com/zaremba/dq/internal/value"
)

// ArrayMode selects how arrays are handled while flattening.
type ArrayMode int

const (
	// ArrayIndex expands every element under a bracketed index key.
	ArrayIndex ArrayMode = iota
	// ArrayIgnore records the array unexpanded under its prefix.
	ArrayIgnore
	// ArrayExpand keeps all-scalar arrays whole; arrays with composite
	// elements recurse per element with the prefix unchanged.
	ArrayExpand
)

// ParseArrayMode maps the CLI spelling to an ArrayMode.
func ParseArrayMode(s string) (ArrayMode, error) {
	switch s {
	case "index":
		return ArrayIndex, nil
	case "ignore":
		return ArrayIgnore, nil
	case "expand":
		return ArrayExpand, nil
	}
	return 0, fmt.Errorf("unknown array mode %q (use index, ignore, or expand)", s)
}

// Entry is one flattened key/value pair.
type Entry struct {
	Key   string
	Value *value.Value
}

// Flatten collapses v into an object of composite keys. Keys follow first
// visit order; a later entry for the same key replaces the earlier one
// (possible only in expand mode). The result shares subtrees with v.
func Flatten(v *value.Value, separator string, mode ArrayMode) *value.Value {
	out := value.NewObject()
	for _, e := range Walk(v, separator, mode) {
		out.Set(e.Key, e.Value)
	}
	return out
}

// Walk is the pure recursive core of Flatten, returning entries in visit
// order and leaving the merge to the caller.
func Walk(v *value.Value, separator string, mode ArrayMode) []Entry {
	return walk(v, "", separator, mode, nil)
}

func walk(v *value.Value, prefix, sep string, mode ArrayMode, dst []Entry) []Entry {
	switch v.Kind {
	case value.ObjectType:
		if len(v.Keys) == 0 {
			if prefix != "" {
				dst = append(dst, Entry{Key: prefix, Value: v})
			}
			return dst
		}
		for i, key := range v.Keys {
			next := key
			if prefix != "" {
				next = prefix + sep + key
			}
			dst = walk(v.Vals[i], next, sep, mode, dst)
		}
		return dst
	case value.ArrayType:
		if mode == ArrayIgnore {
			return append(dst, Entry{Key: prefix, Value: v})
		}
		if mode == ArrayExpand && allScalar(v.Items) {
			return append(dst, Entry{Key: prefix, Value: v})
		}
		for i, item := range v.Items {
			next := prefix
			if mode != ArrayExpand {
				next = prefix + "[" + strconv.Itoa(i) + "]"
			}
			dst = walk(item, next, sep, mode, dst)
		}
		if len(v.Items) == 0 && prefix != "" {
			dst = append(dst, Entry{Key: prefix, Value: v})
		}
		return dst
	default:
		return append(dst, Entry{Key: prefix, Value: v})
	}
}

func allScalar(items []*value.Value) bool {
	for _, item := range items {
		if !item.IsScalar() {
			return false
		}
	}
	return true
}
