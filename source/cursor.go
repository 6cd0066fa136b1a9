// Package source provides the position-aware text cursor shared by the
// lexer and the diagnostic formatter.
package source

import "strings"

// Cursor owns a normalized copy of source text (CRLF and lone CR folded to
// LF) plus a precomputed line-start offset table, so that looking up the
// line and column for a byte offset, or extracting a line's text for a
// diagnostic, never has to rescan from the beginning.
type Cursor struct {
	Text       string
	lineStarts []int
}

// NewCursor normalizes line endings in text and indexes its line starts.
func NewCursor(text string) *Cursor {
	normalized := normalizeLineEndings(text)
	return &Cursor{
		Text:       normalized,
		lineStarts: computeLineStarts(normalized),
	}
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

func computeLineStarts(s string) []int {
	starts := []int{0}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Line returns the 0-based line's text, excluding its trailing newline.
// Out-of-range lines return "".
func (c *Cursor) Line(line int) string {
	if line < 0 || line >= len(c.lineStarts) {
		return ""
	}
	start := c.lineStarts[line]
	end := len(c.Text)
	if line+1 < len(c.lineStarts) {
		end = c.lineStarts[line+1] - 1
	}
	if end < start {
		end = start
	}
	return c.Text[start:end]
}

// LineCount reports how many lines the cursor indexed.
func (c *Cursor) LineCount() int {
	return len(c.lineStarts)
}

// PositionAt converts a byte offset into the normalized text into a
// (line, character) pair via binary search over the line-start table.
func (c *Cursor) PositionAt(offset int) Position {
	lo, hi, line := 0, len(c.lineStarts)-1, 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if c.lineStarts[mid] <= offset {
			line = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return Position{Line: line, Character: offset - c.lineStarts[line]}
}

// Position mirrors token.Position; kept as its own type so this package
// never has to import token (token imports source-shaped interfaces, not
// the other way around).
type Position struct {
	Line      int
	Character int
}
