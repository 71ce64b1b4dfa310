// Package prefs defines the reader preference model shared by the HTTP
// API and the CLI: color theme, typeface, word grouping, emphasis
// strength and language. Preferences arrive from clients as JSON, so
// every field tolerates unknown or missing values and coerces them to
// safe defaults instead of failing.
package prefs

import (
	"github.com/Durar3Ali/Yusr/pkg/readfmt"
)

// Theme is a reading color scheme.
type Theme string

const (
	ThemeLight        Theme = "light"
	ThemeCream        Theme = "cream"
	ThemeDark         Theme = "dark"
	ThemeHighContrast Theme = "high-contrast"
)

func (t Theme) valid() bool {
	switch t {
	case ThemeLight, ThemeCream, ThemeDark, ThemeHighContrast:
		return true
	}
	return false
}

// Font is a reading typeface choice.
type Font string

const (
	FontOpenDyslexic Font = "opendyslexic"
	FontLexend       Font = "lexend"
	FontAtkinson     Font = "atkinson"
	FontSystem       Font = "system"
)

func (f Font) valid() bool {
	switch f {
	case FontOpenDyslexic, FontLexend, FontAtkinson, FontSystem:
		return true
	}
	return false
}

// Preferences carries every reader-adjustable setting. The zero value is
// not ready for use; call Normalize or start from Default.
type Preferences struct {
	// Lang is a language hint: "auto", "en" or "ar".
	Lang string `json:"lang"`
	// GroupSize is the number of consecutive words sharing a color group.
	GroupSize int `json:"group_size"`
	// LeadBold is an emphasis strength: "off", "short", "medium", "strong".
	LeadBold string `json:"lead_bold"`

	Theme Theme `json:"theme"`
	Font  Font  `json:"font"`
	// FontSize is in CSS pixels.
	FontSize float64 `json:"font_size"`
	// LineSpacing is a multiplier of the font size.
	LineSpacing float64 `json:"line_spacing"`
	// LetterSpacing is in em units.
	LetterSpacing float64 `json:"letter_spacing"`
}

// Default returns the preferences new readers start from: cream
// background, OpenDyslexic, groups of three and medium emphasis.
func Default() Preferences {
	return Preferences{
		Lang:          "auto",
		GroupSize:     3,
		LeadBold:      "medium",
		Theme:         ThemeCream,
		Font:          FontOpenDyslexic,
		FontSize:      18,
		LineSpacing:   1.8,
		LetterSpacing: 0.05,
	}
}

// Normalize coerces externally supplied values in place. Unknown enum
// values fall back to their defaults, a missing group size becomes 3 and
// group sizes below 2 are raised to 2 so word coloring never alternates
// on every single word.
func (p *Preferences) Normalize() {
	if _, err := readfmt.ParseLanguageHint(p.Lang); err != nil || p.Lang == "" {
		p.Lang = "auto"
	}

	switch {
	case p.GroupSize <= 0:
		p.GroupSize = 3
	case p.GroupSize < 2:
		p.GroupSize = 2
	}

	if p.LeadBold == "" {
		p.LeadBold = "medium"
	} else if _, err := readfmt.ParseLeadBoldStrength(p.LeadBold); err != nil {
		p.LeadBold = "medium"
	}

	if !p.Theme.valid() {
		p.Theme = ThemeCream
	}
	if !p.Font.valid() {
		p.Font = FontOpenDyslexic
	}
	if p.FontSize <= 0 {
		p.FontSize = 18
	}
	if p.LineSpacing <= 0 {
		p.LineSpacing = 1.8
	}
	if p.LetterSpacing < 0 {
		p.LetterSpacing = 0
	}
}

// RenderOptions converts the preferences to core rendering options,
// normalizing first so the result is always usable.
func (p Preferences) RenderOptions() readfmt.RenderOptions {
	q := p
	q.Normalize()

	lang, _ := readfmt.ParseLanguageHint(q.Lang)
	bold, _ := readfmt.ParseLeadBoldStrength(q.LeadBold)
	return readfmt.RenderOptions{
		GroupSize: q.GroupSize,
		Lang:      lang,
		LeadBold:  bold,
	}
}
