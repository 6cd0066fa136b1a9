// Package diag renders diagnostics: given a source cursor and a position,
// print the offending line with an underline of '_' characters and a caret
// under the column.
package diag

import (
	"fmt"
	"strings"

	"ember/errs"
	"ember/source"
)

// Format renders a complete diagnostic: the "Error: "-prefixed message,
// the source line containing the error, and a caret pointing at the
// column.
func Format(cur *source.Cursor, err errs.Positioned) string {
	pos := err.Position()
	line := cur.Line(pos.Line)
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", err.Error())
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("_", pos.Character))
	b.WriteString("^")
	return b.String()
}
