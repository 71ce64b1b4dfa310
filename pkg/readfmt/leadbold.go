package readfmt

import (
	"fmt"
	"strings"
)

// LeadBoldStrength controls how many leading characters of each word
// receive emphasis.
type LeadBoldStrength int

const (
	// BoldOff disables emphasis entirely.
	BoldOff LeadBoldStrength = iota
	// BoldShort emphasizes one character less than the length-based default.
	BoldShort
	// BoldMedium emphasizes the length-based default.
	BoldMedium
	// BoldStrong emphasizes one character more than the length-based default.
	BoldStrong
)

func (s LeadBoldStrength) String() string {
	switch s {
	case BoldShort:
		return "short"
	case BoldMedium:
		return "medium"
	case BoldStrong:
		return "strong"
	default:
		return "off"
	}
}

// ParseLeadBoldStrength converts a wire or flag value to a
// LeadBoldStrength. The empty string is treated as "off".
func ParseLeadBoldStrength(s string) (LeadBoldStrength, error) {
	switch s {
	case "", "off":
		return BoldOff, nil
	case "short":
		return BoldShort, nil
	case "medium":
		return BoldMedium, nil
	case "strong":
		return BoldStrong, nil
	}
	return BoldOff, fmt.Errorf("unknown lead bold strength %q", s)
}

// arabicDefiniteArticle is the prefix excluded from Arabic emphasis so the
// bold characters land on the stem rather than on the article.
const arabicDefiniteArticle = "ال"

// WordEmphasis is the lead-bold split of one word. Prefix is an
// unemphasized Arabic definite article, Lead holds the emphasized leading
// characters and Tail the remainder. Prefix+Lead+Tail always reassembles
// the original word. When emphasis is off, Lead stays empty and Tail
// carries the whole word.
type WordEmphasis struct {
	Prefix string
	Lead   string
	Tail   string
}

// LeadBold splits word into its emphasized lead and the rest. The bold
// length follows word length, counted in code points: Latin words use 1
// (up to 3 characters), 2 (4 to 6) or 3 (7 or more); Arabic words use 1
// for stems shorter than 4 characters and 2 otherwise, after setting the
// definite article aside. Strength shifts the length by one in either
// direction, clamped to at least 1 and at most the stem length. With
// BoldOff or an empty word, no emphasis is applied.
func LeadBold(word string, strength LeadBoldStrength, lang LanguageHint) WordEmphasis {
	if strength == BoldOff || word == "" {
		return WordEmphasis{Tail: word}
	}
	if lang == LangArabic || (lang == LangAuto && IsArabicWord(word)) {
		return leadBoldArabic(word, strength)
	}
	return leadBoldLatin(word, strength)
}

func leadBoldArabic(word string, strength LeadBoldStrength) WordEmphasis {
	var prefix string
	stem := []rune(word)
	if strings.HasPrefix(word, arabicDefiniteArticle) {
		prefix = arabicDefiniteArticle
		stem = stem[2:]
		if len(stem) == 0 {
			// The word is only the article; leave it untouched.
			return WordEmphasis{Tail: word}
		}
	}
	base := 2
	if len(stem) < 4 {
		base = 1
	}
	n := boldLength(base, len(stem), strength)
	return WordEmphasis{Prefix: prefix, Lead: string(stem[:n]), Tail: string(stem[n:])}
}

func leadBoldLatin(word string, strength LeadBoldStrength) WordEmphasis {
	runes := []rune(word)
	var base int
	switch {
	case len(runes) <= 3:
		base = 1
	case len(runes) <= 6:
		base = 2
	default:
		base = 3
	}
	n := boldLength(base, len(runes), strength)
	return WordEmphasis{Lead: string(runes[:n]), Tail: string(runes[n:])}
}

// boldLength applies the strength adjustment to the length-based default,
// keeping the result within [1, length].
func boldLength(base, length int, strength LeadBoldStrength) int {
	n := base
	switch strength {
	case BoldShort:
		if n = base - 1; n < 1 {
			n = 1
		}
	case BoldStrong:
		if n = base + 1; n > length {
			n = length
		}
	}
	return n
}
