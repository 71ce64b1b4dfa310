package readfmt

import (
	"fmt"
	"unicode"
)

// Direction is a resolved text direction. Its string form matches the HTML
// dir attribute values.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// LanguageHint selects the language branch for direction resolution and
// lead-bold emphasis.
type LanguageHint int

const (
	// LangAuto defers to per-word and per-text script classification.
	LangAuto LanguageHint = iota
	// LangEnglish forces left-to-right rendering and Latin emphasis rules.
	LangEnglish
	// LangArabic forces right-to-left rendering and Arabic emphasis rules.
	LangArabic
)

func (l LanguageHint) String() string {
	switch l {
	case LangEnglish:
		return "en"
	case LangArabic:
		return "ar"
	default:
		return "auto"
	}
}

// ParseLanguageHint converts a wire or flag value to a LanguageHint. The
// empty string is treated as "auto".
func ParseLanguageHint(s string) (LanguageHint, error) {
	switch s {
	case "", "auto":
		return LangAuto, nil
	case "en":
		return LangEnglish, nil
	case "ar":
		return LangArabic, nil
	}
	return LangAuto, fmt.Errorf("unknown language hint %q", s)
}

// Whole-text detection flips to RTL when strictly more than
// rtlNumerator/rtlDenominator of the non-whitespace characters are Arabic.
// Integer arithmetic keeps the 30% boundary exact.
const (
	rtlNumerator   = 3
	rtlDenominator = 10
)

// isArabicRune reports whether r falls in the Arabic script blocks:
// Arabic (U+0600..U+06FF), Arabic Supplement (U+0750..U+077F),
// Arabic Presentation Forms-A (U+FB50..U+FDFF) and
// Arabic Presentation Forms-B (U+FE70..U+FEFF).
func isArabicRune(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}

// IsArabicWord reports whether word contains at least one Arabic code
// point. Words mixing scripts, such as Arabic with Western digits, count
// as Arabic.
func IsArabicWord(word string) bool {
	for _, r := range word {
		if isArabicRune(r) {
			return true
		}
	}
	return false
}

// DetectRTL classifies whole text as right-to-left when Arabic code points
// make up strictly more than 30% of its non-whitespace characters. Empty
// and all-whitespace text classify as left-to-right.
func DetectRTL(text string) bool {
	arabic, total := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if isArabicRune(r) {
			arabic++
		}
	}
	return arabic*rtlDenominator > total*rtlNumerator
}

// DirectionFor resolves the overall direction of text under hint: "ar"
// forces RTL, "en" forces LTR, "auto" defers to DetectRTL.
func DirectionFor(text string, hint LanguageHint) Direction {
	switch hint {
	case LangArabic:
		return RTL
	case LangEnglish:
		return LTR
	}
	if DetectRTL(text) {
		return RTL
	}
	return LTR
}

// wordDirection resolves a single word's direction under hint.
func wordDirection(word string, hint LanguageHint) Direction {
	switch hint {
	case LangArabic:
		return RTL
	case LangEnglish:
		return LTR
	}
	if IsArabicWord(word) {
		return RTL
	}
	return LTR
}
