package dotpath

import "github.com/zaremba/dq/internal/value"

// Extract evaluates tokens against doc and returns every match, in order.
// Evaluation keeps a working set, initially {doc}; each token replaces it
// with the concatenated matches: outer order follows the prior working set,
// inner order follows document key order for mappings and element order for
// arrays. Keys missing, indices out of range, and kind mismatches
// contribute nothing. No token sequence errors, and doc is never mutated;
// matches are references into the document tree.
func Extract(doc *value.Value, tokens []Token) []*value.Value {
	current := []*value.Value{doc}
	for _, tok := range tokens {
		var next []*value.Value
		for _, item := range current {
			switch tok.Kind {
			case WildcardToken:
				switch item.Kind {
				case value.ArrayType:
					next = append(next, item.Items...)
				case value.ObjectType:
					next = append(next, item.Vals...)
				}
			case IndexToken:
				if item.Kind == value.ArrayType {
					n := tok.Index
					if n < 0 {
						n += len(item.Items)
					}
					if n >= 0 && n < len(item.Items) {
						next = append(next, item.Items[n])
					}
				}
			case KeyToken:
				if v, ok := item.Get(tok.Key); ok {
					next = append(next, v)
				}
			}
		}
		current = next
		if len(current) == 0 {
			break
		}
	}
	return current
}

// ExtractPath parses raw and evaluates it against doc.
func ExtractPath(doc *value.Value, raw string) ([]*value.Value, error) {
	tokens, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return Extract(doc, tokens), nil
}

// Exists reports whether raw matches at least one value in doc.
func Exists(doc *value.Value, raw string) (bool, error) {
	matches, err := ExtractPath(doc, raw)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// First returns the first match of raw in doc, or def when there is none.
func First(doc *value.Value, raw string, def *value.Value) (*value.Value, error) {
	matches, err := ExtractPath(doc, raw)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return def, nil
	}
	return matches[0], nil
}
