// Package predicate builds record predicates for filtering: comparison
// expressions, path existence, type tests, substring and regexp matching,
// and full expression-language predicates.
package predicate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zaremba/dq/internal/dotpath"
	"github.com/zaremba/dq/internal/value"
)

// Predicate decides whether a record is kept.
type Predicate func(record *value.Value) bool

var whereRE = regexp.MustCompile(`^(.+?)(==|!=|>=|<=|>|<)(.+)$`)

// allowedTypeTags are the tags accepted by Type conditions.
var allowedTypeTags = map[string]bool{
	"null": true, "bool": true, "int": true, "float": true,
	"string": true, "array": true, "object": true,
}

// Where parses a comparison like "age>=21" or `name=="bob"`. The predicate
// matches when any value at the field path satisfies the comparison;
// incomparable pairs are skipped, except that != matches across types.
func Where(expr string) (Predicate, error) {
	m := whereRE.FindStringSubmatch(strings.TrimSpace(expr))
	if m == nil {
		return nil, fmt.Errorf("invalid --where expression %q", expr)
	}
	field, op := strings.TrimSpace(m[1]), m[2]
	tokens, err := dotpath.Parse(field)
	if err != nil {
		return nil, err
	}
	rhs := parseRHS(m[3])

	return func(record *value.Value) bool {
		for _, v := range dotpath.Extract(record, tokens) {
			if matched, ok := compare(v, rhs, op); ok && matched {
				return true
			}
		}
		return false
	}, nil
}

// parseRHS interprets the right-hand side of a comparison: null/true/false,
// then numbers, then a string with surrounding quotes stripped. Composite
// literals stay verbatim text, so comparisons only ever see scalars.
func parseRHS(raw string) *value.Value {
	if v := value.ParseLiteral(raw); v.IsScalar() && v.Kind != value.StringType {
		return v
	}
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, "'")
	return value.NewString(s)
}

// compare evaluates one comparison. The second result reports whether the
// pair was comparable under op at all.
func compare(v, rhs *value.Value, op string) (matched, ok bool) {
	switch op {
	case "==":
		return value.Equal(v, rhs), true
	case "!=":
		return !value.Equal(v, rhs), true
	}

	if lf, lok := numericValue(v); lok {
		if rf, rok := numericValue(rhs); rok {
			return ordered(compareFloats(lf, rf), op), true
		}
		return false, false
	}
	if v.Kind == value.StringType && rhs.Kind == value.StringType {
		return ordered(strings.Compare(v.Str, rhs.Str), op), true
	}
	return false, false
}

func numericValue(v *value.Value) (float64, bool) {
	switch v.Kind {
	case value.IntType:
		return float64(v.Int), true
	case value.FloatType:
		return v.Float, true
	}
	return 0, false
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func ordered(cmp int, op string) bool {
	switch op {
	case ">":
		return cmp > 0
	case "<":
		return cmp < 0
	case ">=":
		return cmp >= 0
	case "<=":
		return cmp <= 0
	}
	return false
}

// Exists keeps records where path matches at least one value; invert flips
// the test.
func Exists(path string, invert bool) (Predicate, error) {
	tokens, err := dotpath.Parse(strings.TrimSpace(path))
	if err != nil {
		return nil, err
	}
	return func(record *value.Value) bool {
		found := len(dotpath.Extract(record, tokens)) > 0
		if invert {
			return !found
		}
		return found
	}, nil
}

// TypeIs parses "field=typename" and keeps records where any value at the
// field carries that type tag.
func TypeIs(spec string) (Predicate, error) {
	field, expected, ok := strings.Cut(spec, "=")
	if !ok {
		return nil, fmt.Errorf("--type must use field=typename syntax, got %q", spec)
	}
	expected = strings.TrimSpace(expected)
	if !allowedTypeTags[expected] {
		return nil, fmt.Errorf("unsupported type %q (use null, bool, int, float, string, array, or object)", expected)
	}
	tokens, err := dotpath.Parse(strings.TrimSpace(field))
	if err != nil {
		return nil, err
	}
	return func(record *value.Value) bool {
		for _, v := range dotpath.Extract(record, tokens) {
			if v.TypeName() == expected {
				return true
			}
		}
		return false
	}, nil
}

// Contains parses "field:substring" and keeps records where any string
// value at the field contains the substring.
func Contains(spec string) (Predicate, error) {
	field, substring, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("--contains must be field:substring, got %q", spec)
	}
	tokens, err := dotpath.Parse(strings.TrimSpace(field))
	if err != nil {
		return nil, err
	}
	return func(record *value.Value) bool {
		for _, v := range dotpath.Extract(record, tokens) {
			if v.Kind == value.StringType && strings.Contains(v.Str, substring) {
				return true
			}
		}
		return false
	}, nil
}

// Regex parses "field:pattern" and keeps records where any string value at
// the field matches the pattern.
func Regex(spec string) (Predicate, error) {
	field, pattern, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("--regex must be field:pattern, got %q", spec)
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid --regex pattern: %w", err)
	}
	tokens, err := dotpath.Parse(strings.TrimSpace(field))
	if err != nil {
		return nil, err
	}
	return func(record *value.Value) bool {
		for _, v := range dotpath.Extract(record, tokens) {
			if v.Kind == value.StringType && compiled.MatchString(v.Str) {
				return true
			}
		}
		return false
	}, nil
}

// Any matches records satisfying at least one predicate; All requires
// every predicate.
func Any(preds []Predicate) Predicate {
	return func(record *value.Value) bool {
		for _, p := range preds {
			if p(record) {
				return true
			}
		}
		return false
	}
}

func All(preds []Predicate) Predicate {
	return func(record *value.Value) bool {
		for _, p := range preds {
			if !p(record) {
				return false
			}
		}
		return true
	}
}
