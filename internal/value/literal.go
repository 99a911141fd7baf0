package value

import "strings"

// ParseLiteral interprets a command-line literal: the words null, true, and
// false (any case), then any valid JSON value, then a verbatim string.
func ParseLiteral(raw string) *Value {
	candidate := strings.TrimSpace(raw)
	switch strings.ToLower(candidate) {
	case "null":
		return Null()
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	}
	if v, err := Decode([]byte(candidate)); err == nil {
		return v
	}
	return NewString(candidate)
}
