package prefs

import (
	"testing"

	"github.com/Durar3Ali/Yusr/pkg/readfmt"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want readfmt.LanguageHint
	}{
		{"en", readfmt.LangEnglish},
		{"en-US", readfmt.LangEnglish},
		{"en-GB", readfmt.LangEnglish},
		{"ar", readfmt.LangArabic},
		{"ar-SA", readfmt.LangArabic},
		{"ar-EG", readfmt.LangArabic},
		{"fr", readfmt.LangAuto},
		{"ja", readfmt.LangAuto},
		{"und", readfmt.LangAuto},
		{"", readfmt.LangAuto},
		{"not a tag!", readfmt.LangAuto},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ParseLanguage(tt.tag); got != tt.want {
				t.Errorf("ParseLanguage(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}
