package readfmt

import (
	"regexp"
	"strings"
)

var (
	hspaceRun  = regexp.MustCompile(`[ \t]+`)
	newlineRun = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes whitespace so that every later stage sees one
// predictable form. Windows and old-Mac line endings become "\n", each run
// of spaces and tabs collapses to a single space, runs of three or more
// line breaks collapse to exactly two, and leading and trailing whitespace
// is trimmed. Normalize is idempotent: applying it twice gives the same
// result as applying it once.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = hspaceRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n\n")
	return strings.Trim(text, " \n")
}
