// Package dotpath parses and evaluates dotted path expressions against
// value trees: dotted keys, bracketed indices (negative allowed), and [*]
// wildcards. Evaluation is fan-out style: a path yields zero or more
// matches and absence is never an error.
package dotpath

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind discriminates path tokens.
type TokenKind int

const (
	KeyToken      TokenKind = iota // mapping key lookup
	IndexToken                     // array index, negative addresses from the end
	WildcardToken                  // all elements of an array, all values of a mapping
)

// Token is one navigation step of a parsed path.
type Token struct {
	Kind  TokenKind
	Key   string
	Index int
}

func (t Token) String() string {
	switch t.Kind {
	case IndexToken:
		return "[" + strconv.Itoa(t.Index) + "]"
	case WildcardToken:
		return "[*]"
	}
	return t.Key
}

// Parse tokenizes a raw path expression. An empty string yields no tokens,
// meaning the whole document. Dots and stray close-brackets separate
// identifier tokens; identifiers keep interior whitespace. Bracket content
// that is neither "*" nor a signed integer degrades to a key token, and an
// empty bracket pair contributes nothing. The only parse failure is an
// unterminated bracket.
func Parse(raw string) ([]Token, error) {
	if raw == "" {
		return nil, nil
	}
	var tokens []Token
	i := 0
	for i < len(raw) {
		switch raw[i] {
		case '.', ']':
			i++
		case '[':
			end := strings.IndexByte(raw[i+1:], ']')
			if end == -1 {
				return nil, fmt.Errorf("unterminated '[' at offset %d in path %q", i, raw)
			}
			content := raw[i+1 : i+1+end]
			if tok, ok := bracketToken(content); ok {
				tokens = append(tokens, tok)
			}
			i += end + 2
		default:
			start := i
			for i < len(raw) && raw[i] != '.' && raw[i] != '[' && raw[i] != ']' {
				i++
			}
			tokens = append(tokens, Token{Kind: KeyToken, Key: raw[start:i]})
		}
	}
	return tokens, nil
}

func bracketToken(content string) (Token, bool) {
	if content == "" {
		return Token{}, false
	}
	if content == "*" {
		return Token{Kind: WildcardToken}, true
	}
	if n, err := strconv.Atoi(content); err == nil {
		return Token{Kind: IndexToken, Index: n}, true
	}
	return Token{Kind: KeyToken, Key: content}, true
}
