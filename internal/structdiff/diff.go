// Package structdiff computes structural differences between two value
// trees as a flat list of change records addressed by path.
package structdiff

import (
	"sort"
	"strconv"

	"github.com/zaremba/dq/internal/value"
)

// Change kinds.
const (
	KindAdded          = "added"
	KindRemoved        = "removed"
	KindChanged        = "changed"
	KindTypeChange     = "type_change"
	KindArraySetChange = "array_set_change"
)

// Change is one difference between the left and right documents.
type Change struct {
	Path      string       `json:"path"`
	Kind      string       `json:"kind"`
	LeftType  string       `json:"left_type,omitempty"`
	RightType string       `json:"right_type,omitempty"`
	Left      *value.Value `json:"left,omitempty"`
	Right     *value.Value `json:"right,omitempty"`
}

// Diff walks both trees and collects changes. Object keys are visited in
// sorted order so output is reproducible regardless of document key order.
// With ignoreOrder, arrays compare as multisets of canonical forms and
// differences surface as a single array_set_change per array.
func Diff(left, right *value.Value, ignoreOrder bool) []Change {
	var changes []Change
	diffValues(left, right, "", &changes, ignoreOrder)
	return changes
}

func diffValues(left, right *value.Value, path string, changes *[]Change, ignoreOrder bool) {
	if left.Kind != right.Kind {
		*changes = append(*changes, Change{
			Path:      displayPath(path),
			Kind:      KindTypeChange,
			LeftType:  left.Kind.String(),
			RightType: right.Kind.String(),
			Left:      left,
			Right:     right,
		})
		return
	}

	switch left.Kind {
	case value.ObjectType:
		diffObjects(left, right, path, changes, ignoreOrder)
	case value.ArrayType:
		diffArrays(left, right, path, changes, ignoreOrder)
	default:
		if !value.Equal(left, right) {
			*changes = append(*changes, Change{
				Path: displayPath(path), Kind: KindChanged, Left: left, Right: right,
			})
		}
	}
}

func diffObjects(left, right *value.Value, path string, changes *[]Change, ignoreOrder bool) {
	leftKeys := keySet(left)
	rightKeys := keySet(right)

	for _, key := range sortedDifference(leftKeys, rightKeys) {
		v, _ := left.Get(key)
		*changes = append(*changes, Change{Path: childPath(path, key), Kind: KindRemoved, Left: v})
	}
	for _, key := range sortedDifference(rightKeys, leftKeys) {
		v, _ := right.Get(key)
		*changes = append(*changes, Change{Path: childPath(path, key), Kind: KindAdded, Right: v})
	}
	for _, key := range sortedIntersection(leftKeys, rightKeys) {
		lv, _ := left.Get(key)
		rv, _ := right.Get(key)
		diffValues(lv, rv, childPath(path, key), changes, ignoreOrder)
	}
}

func diffArrays(left, right *value.Value, path string, changes *[]Change, ignoreOrder bool) {
	if ignoreOrder {
		if !sameAsSets(left.Items, right.Items) {
			*changes = append(*changes, Change{
				Path: displayPath(path), Kind: KindArraySetChange, Left: left, Right: right,
			})
		}
		return
	}

	min := len(left.Items)
	if len(right.Items) < min {
		min = len(right.Items)
	}
	for i := 0; i < min; i++ {
		diffValues(left.Items[i], right.Items[i], indexPath(path, i), changes, ignoreOrder)
	}
	for i := min; i < len(left.Items); i++ {
		*changes = append(*changes, Change{Path: indexPath(path, i), Kind: KindRemoved, Left: left.Items[i]})
	}
	for i := min; i < len(right.Items); i++ {
		*changes = append(*changes, Change{Path: indexPath(path, i), Kind: KindAdded, Right: right.Items[i]})
	}
}

// sameAsSets compares two element slices as sets of canonical forms.
func sameAsSets(left, right []*value.Value) bool {
	ls := map[string]bool{}
	for _, v := range left {
		ls[v.StableKey()] = true
	}
	rs := map[string]bool{}
	for _, v := range right {
		rs[v.StableKey()] = true
	}
	if len(ls) != len(rs) {
		return false
	}
	for k := range ls {
		if !rs[k] {
			return false
		}
	}
	return true
}

func keySet(v *value.Value) map[string]bool {
	set := make(map[string]bool, len(v.Keys))
	for _, k := range v.Keys {
		set[k] = true
	}
	return set
}

func sortedDifference(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func sortedIntersection(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// displayPath names the document root "$" when the path is empty.
func displayPath(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
