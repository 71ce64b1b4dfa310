package prefs

import (
	"golang.org/x/text/language"

	"github.com/Durar3Ali/Yusr/pkg/readfmt"
)

// The matcher order fixes the hint mapping: index 0 is English, 1 Arabic.
var langMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Arabic,
})

// ParseLanguage maps a BCP-47 tag, such as one reported by OCR language
// detection, to a reading language hint. Tags that are not confidently
// English or Arabic keep automatic per-word detection.
func ParseLanguage(tag string) readfmt.LanguageHint {
	parsed, err := language.Parse(tag)
	if err != nil {
		return readfmt.LangAuto
	}

	_, index, conf := langMatcher.Match(parsed)
	if conf < language.High {
		return readfmt.LangAuto
	}
	switch index {
	case 0:
		return readfmt.LangEnglish
	case 1:
		return readfmt.LangArabic
	}
	return readfmt.LangAuto
}
