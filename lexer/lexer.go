// Package lexer implements the rule-driven tokenizer: ignores, then
// keywords (sorted by descending text length, then lexicographically),
// then regex classes.
package lexer

import (
	"strings"

	"ember/errs"
	"ember/source"
	"ember/token"
)

// Lexer walks a source.Cursor producing tokens on demand via Scan.
type Lexer struct {
	cursor *source.Cursor
	pos    int
}

// New builds a Lexer over src, normalizing line endings up front via the
// source cursor.
func New(src string) *Lexer {
	return &Lexer{cursor: source.NewCursor(src)}
}

// Cursor exposes the underlying source cursor, e.g. for diagnostics.
func (l *Lexer) Cursor() *source.Cursor {
	return l.cursor
}

// Scan tokenizes the entire source, returning the tokens produced so far
// and the first error encountered, if any. Lexical errors are fatal: Scan
// stops at the first UnknownCharacter rather than attempting recovery.
func (l *Lexer) Scan() ([]token.Token, error) {
	var tokens []token.Token
	for {
		l.skipIgnores()
		if l.atEnd() {
			break
		}
		tok, err := l.next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	pos := l.cursor.PositionAt(l.pos)
	tokens = append(tokens, token.New(token.EOF, "", toTokenPos(pos), l.cursor))
	return tokens, nil
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.cursor.Text)
}

func (l *Lexer) remaining() string {
	return l.cursor.Text[l.pos:]
}

// skipIgnores retries every ignore rule at the cursor until none match.
func (l *Lexer) skipIgnores() {
	for {
		matched := false
		rem := l.remaining()
		for _, re := range ignorePatterns {
			if loc := re.FindStringIndex(rem); loc != nil {
				l.pos += loc[1]
				matched = true
				break
			}
		}
		if !matched {
			return
		}
	}
}

func (l *Lexer) next() (token.Token, error) {
	if tok, ok := l.matchKeyword(); ok {
		return tok, nil
	}
	if tok, ok := l.matchClass(); ok {
		return tok, nil
	}
	pos := l.cursor.PositionAt(l.pos)
	ch := rune(l.cursor.Text[l.pos])
	return token.Token{}, &errs.UnknownCharacter{Char: ch, Pos: toTokenPos(pos)}
}

func (l *Lexer) matchKeyword() (token.Token, bool) {
	rem := l.remaining()
	for _, kw := range sortedKeywords {
		if !strings.HasPrefix(rem, kw.text) {
			continue
		}
		if kw.alpha {
			after := rem[len(kw.text):]
			if len(after) > 0 && isIdentByte(after[0]) {
				continue
			}
		}
		pos := l.cursor.PositionAt(l.pos)
		tok := token.New(kw.kind, kw.text, toTokenPos(pos), l.cursor)
		l.pos += len(kw.text)
		return tok, true
	}
	return token.Token{}, false
}

func (l *Lexer) matchClass() (token.Token, bool) {
	rem := l.remaining()
	for _, c := range classRules {
		loc := c.pattern.FindStringIndex(rem)
		if loc == nil {
			continue
		}
		text := rem[:loc[1]]
		pos := l.cursor.PositionAt(l.pos)
		tok := token.New(c.kind, text, toTokenPos(pos), l.cursor)
		l.pos += loc[1]
		return tok, true
	}
	return token.Token{}, false
}

func toTokenPos(p source.Position) token.Position {
	return token.Position{Line: p.Line, Character: p.Character}
}
