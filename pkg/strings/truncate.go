package strings

import (
	"strings"
)

// DefaultDescriptionMaxLen is the cell width the table surfaces use for
// description-like columns. Shared so every surface truncates the same way.
const DefaultDescriptionMaxLen = 50

// MinTruncateLen is the smallest usable maxLen for TruncateDescription.
// Anything shorter leaves no room for content plus the "..." marker.
const MinTruncateLen = 4

// TruncateDescription flattens a string to a single line and truncates it
// to maxLen characters, appending "..." when content was cut. Newlines and
// runs of whitespace collapse to single spaces first, so multi-line
// research notes and host-provided descriptions render as one table cell.
//
// Truncation counts runes, not bytes, and never splits a multi-byte
// character. A maxLen below MinTruncateLen is clamped.
func TruncateDescription(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	// Fields splits on any whitespace run, covering \n, \r, \t, and
	// repeated spaces in one pass
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
