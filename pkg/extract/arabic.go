package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// detachedMarks matches Arabic combining marks that text extraction split
// from their base letters with spaces: Quranic annotation signs
// (U+0610..U+061A), harakat and tanween (U+064B..U+065F), superscript
// alef (U+0670) and the small Koranic signs (U+06D6..U+06ED without the
// enclosing marks).
var detachedMarks = regexp.MustCompile(` +([\x{0610}-\x{061A}\x{064B}-\x{065F}\x{0670}\x{06D6}-\x{06DC}\x{06DF}-\x{06E4}\x{06E7}\x{06E8}\x{06EA}-\x{06ED}]+)`)

// ReattachMarks deletes the spaces that some PDF generators leave between
// an Arabic letter and its vowel marks, so a word extracted as separate
// letter and mark fragments reads as one word again.
func ReattachMarks(text string) string {
	return detachedMarks.ReplaceAllString(text, "$1")
}

// CleanPage canonicalizes one page of extracted text: marks are
// reattached line by line, line ends are trimmed, blank lines are dropped
// and the result is NFC normalized so repaired marks compose with their
// base letters.
func CleanPage(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(ReattachMarks(line))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return norm.NFC.String(strings.Join(lines, "\n"))
}
