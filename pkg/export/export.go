// Package export renders a formatted reading document as an accessible
// print PDF. Words are laid out group by group with the same lead
// emphasis and group alternation the HTML renderer produces, so a printed
// page matches what the reader sees on screen.
//
// This package provides:
// - Word-by-word page layout with line wrapping and page breaks
// - Lead emphasis drawn with the bold font style
// - Alternating background shading behind word groups
// - Right-to-left line flow for Arabic paragraphs
//
// Key Types:
// - Config: page geometry, line spacing and shading options
// - FontConfig: font family, size and optional UTF-8 TTF files
//
// Main Functions:
// - PDF: readfmt.Document → PDF bytes
//
// Core fonts cover Latin-1 text only. Arabic documents need a registered
// UTF-8 TTF font; code points are drawn without complex-script shaping.
package export

import (
	"bytes"
	"errors"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/Durar3Ali/Yusr/pkg/readfmt"
)

// Config holds the page and typography options for a PDF export.
type Config struct {
	Font FontConfig
	// PageFormat is an fpdf page size name such as "A4" or "Letter".
	PageFormat string
	// Margin is the page margin in points on all four sides.
	Margin float64
	// LineHeight is the line advance as a multiple of the font size.
	LineHeight float64
	// ShadeGroups draws a light background behind every other word group.
	ShadeGroups bool
}

// FontConfig contains font settings for the exported text.
type FontConfig struct {
	Name  string  // font family (core font name or UTF-8 family)
	Style string  // base style ("", "B", "I", "BI")
	Size  float64 // font size in points
	// AscentRatio positions the baseline inside the line box.
	AscentRatio float64
	// TTFPath registers a UTF-8 font file for the family, enabling text
	// beyond Latin-1. BoldTTFPath carries the bold cut; when empty the
	// regular file doubles as bold.
	TTFPath     string
	BoldTTFPath string
}

// DefaultFont renders with Helvetica at a comfortable reading size.
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        14,
	AscentRatio: 0.718,
}

// DefaultConfig returns an A4 page with generous reading spacing.
func DefaultConfig() Config {
	return Config{
		Font:        DefaultFont,
		PageFormat:  "A4",
		Margin:      56.7,
		LineHeight:  1.8,
		ShadeGroups: true,
	}
}

// PDF lays the document out as a print PDF and returns its bytes. Text
// that cannot be encoded for a core font fails once it affects more than
// a tenth of the words; registering a UTF-8 TTF lifts the restriction.
func PDF(doc *readfmt.Document, cfg Config) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	if cfg.Font.Size <= 0 {
		cfg.Font = DefaultFont
	}
	if cfg.Font.AscentRatio <= 0 {
		cfg.Font.AscentRatio = DefaultFont.AscentRatio
	}
	if cfg.PageFormat == "" {
		cfg.PageFormat = "A4"
	}
	if cfg.Margin <= 0 {
		cfg.Margin = DefaultConfig().Margin
	}
	if cfg.LineHeight <= 0 {
		cfg.LineHeight = DefaultConfig().LineHeight
	}

	pdf := fpdf.New("P", "pt", cfg.PageFormat, "")
	if cfg.Font.TTFPath != "" {
		pdf.AddUTF8Font(cfg.Font.Name, "", cfg.Font.TTFPath)
		boldPath := cfg.Font.BoldTTFPath
		if boldPath == "" {
			boldPath = cfg.Font.TTFPath
		}
		pdf.AddUTF8Font(cfg.Font.Name, "B", boldPath)
	}
	pdf.SetFont(cfg.Font.Name, cfg.Font.Style, cfg.Font.Size)
	pdf.AddPage()

	l := newLayout(pdf, cfg)
	for i, para := range doc.Paragraphs {
		if i > 0 {
			l.paragraphGap()
		}
		l.startParagraph(para.Dir)
		for _, item := range para.Items {
			switch it := item.(type) {
			case *readfmt.Run:
				l.placeRun(it)
			case *readfmt.LineBreak:
				l.newline()
			}
		}
		l.endParagraph()
	}

	if l.wordCount > 0 && l.encodingErrors > 0 && l.encodingErrors > l.wordCount/10 {
		return nil, fmt.Errorf("character encoding issues in %d of %d words; this text needs a UTF-8 font",
			l.encodingErrors, l.wordCount)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generating pdf: %w", err)
	}
	return buf.Bytes(), nil
}
