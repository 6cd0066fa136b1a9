// Package litparse parses source-level literal tokens (string escapes,
// arbitrary-precision integers) into their runtime form. Shared by the
// tree-walk interpreter and the bytecode compiler so both engines unescape
// strings identically.
package litparse

import (
	"fmt"
	"math/big"
	"strings"
)

// UnescapeString strips the surrounding quotes from a raw STRING token's
// text and resolves the recognized escapes `\'`, `\0`, `\t`, `\n`. Any
// other `\X` sequence is left as-is, backslash included, so an unusual
// escape degrades gracefully instead of aborting a run.
func UnescapeString(raw string) string {
	body := raw
	if len(body) >= 2 && body[0] == '\'' && body[len(body)-1] == '\'' {
		body = body[1 : len(body)-1]
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		switch body[i+1] {
		case '\'':
			b.WriteByte('\'')
			i++
		case '0':
			b.WriteByte(0)
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ParseInt parses an INT token's text (decimal digits only, per the
// lexer's regex class) as an arbitrary-precision integer.
func ParseInt(text string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer literal %q", text)
	}
	return n, nil
}
