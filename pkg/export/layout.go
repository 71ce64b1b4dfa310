package export

import (
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/Durar3Ali/Yusr/pkg/readfmt"
)

// shadeBoxRatio sizes the group shading box relative to the font size so
// it covers ascenders and descenders.
const shadeBoxRatio = 1.3

type layout struct {
	pdf *fpdf.Fpdf
	cfg Config

	utf8      bool
	boldStyle string

	left, right, bottom float64
	advance             float64
	gap                 float64
	spaceWidth          float64

	x, y      float64
	dir       readfmt.Direction
	lineEmpty bool

	wordCount      int
	encodingErrors int
	wordErr        bool
}

func newLayout(pdf *fpdf.Fpdf, cfg Config) *layout {
	pageW, pageH := pdf.GetPageSize()
	l := &layout{
		pdf:       pdf,
		cfg:       cfg,
		utf8:      cfg.Font.TTFPath != "",
		boldStyle: boldStyle(cfg.Font.Style),
		left:      cfg.Margin,
		right:     pageW - cfg.Margin,
		bottom:    pageH - cfg.Margin,
		advance:   cfg.Font.Size * cfg.LineHeight,
		y:         cfg.Margin,
	}
	l.gap = l.advance / 2
	l.setRegular()
	l.spaceWidth = pdf.GetStringWidth(" ")
	return l
}

func boldStyle(style string) string {
	if strings.Contains(style, "B") {
		return style
	}
	return style + "B"
}

func (l *layout) setRegular() {
	l.pdf.SetFont(l.cfg.Font.Name, l.cfg.Font.Style, l.cfg.Font.Size)
}

func (l *layout) setBold() {
	l.pdf.SetFont(l.cfg.Font.Name, l.boldStyle, l.cfg.Font.Size)
}

// encode prepares text for the current font. Core fonts take Latin-1;
// text that cannot be converted is drawn raw and marks the word as an
// encoding error.
func (l *layout) encode(s string) string {
	if l.utf8 || s == "" {
		return s
	}
	encoded, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		l.wordErr = true
		return s
	}
	return encoded
}

func (l *layout) startParagraph(dir readfmt.Direction) {
	l.dir = dir
	if l.y+l.advance > l.bottom {
		l.pageBreak()
	}
	l.resetLine()
}

func (l *layout) endParagraph() {
	if !l.lineEmpty {
		l.y += l.advance
	}
}

func (l *layout) paragraphGap() {
	l.y += l.gap
}

func (l *layout) resetLine() {
	if l.dir == readfmt.RTL {
		l.x = l.right
	} else {
		l.x = l.left
	}
	l.lineEmpty = true
}

func (l *layout) newline() {
	l.y += l.advance
	if l.y+l.advance > l.bottom {
		l.pageBreak()
	}
	l.resetLine()
}

func (l *layout) pageBreak() {
	l.pdf.AddPage()
	l.y = l.cfg.Margin
}

// placeRun lays a direction run into the paragraph flow. A run against
// the paragraph direction keeps its own reading order, so its words enter
// the flow reversed.
func (l *layout) placeRun(run *readfmt.Run) {
	words := make([]*readfmt.Word, 0, len(run.Items))
	for _, item := range run.Items {
		if w, ok := item.(*readfmt.Word); ok {
			words = append(words, w)
		}
	}
	if run.Dir != l.dir {
		for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
			words[i], words[j] = words[j], words[i]
		}
	}
	for _, w := range words {
		l.placeWord(w)
	}
}

// fits reports whether a word of the given width, plus the inter-word
// space when the line already holds text, stays inside the margins.
func (l *layout) fits(width float64) bool {
	needed := width
	if !l.lineEmpty {
		needed += l.spaceWidth
	}
	if l.dir == readfmt.RTL {
		return l.x-needed >= l.left
	}
	return l.x+needed <= l.right
}

func (l *layout) placeWord(w *readfmt.Word) {
	l.wordErr = false
	prefix := l.encode(w.Emphasis.Prefix)
	lead := l.encode(w.Emphasis.Lead)
	tail := l.encode(w.Emphasis.Tail)
	if l.wordErr {
		l.encodingErrors++
	}
	l.wordCount++

	l.setRegular()
	prefixW := l.pdf.GetStringWidth(prefix)
	tailW := l.pdf.GetStringWidth(tail)
	l.setBold()
	leadW := l.pdf.GetStringWidth(lead)
	width := prefixW + leadW + tailW

	if !l.fits(width) && !l.lineEmpty {
		l.newline()
	}

	var start float64
	if l.dir == readfmt.RTL {
		if !l.lineEmpty {
			l.x -= l.spaceWidth
		}
		l.x -= width
		start = l.x
	} else {
		if !l.lineEmpty {
			l.x += l.spaceWidth
		}
		start = l.x
		l.x += width
	}

	if l.cfg.ShadeGroups && w.Group%2 == 1 {
		l.pdf.SetFillColor(226, 236, 250)
		l.pdf.Rect(start, l.y, width, l.cfg.Font.Size*shadeBoxRatio, "F")
	}

	baseline := l.y + l.cfg.Font.Size*l.cfg.Font.AscentRatio
	if l.utf8 && w.Dir == readfmt.RTL {
		l.drawSegmentsRTL(start+width, baseline, prefix, lead, tail, prefixW, leadW)
	} else {
		l.drawSegments(start, baseline, prefix, lead, tail, prefixW, leadW)
	}

	l.lineEmpty = false
}

// drawSegments draws the word segments left to right from the box's left
// edge.
func (l *layout) drawSegments(x, baseline float64, prefix, lead, tail string, prefixW, leadW float64) {
	l.setRegular()
	if prefix != "" {
		l.pdf.Text(x, baseline, prefix)
		x += prefixW
	}
	if lead != "" {
		l.setBold()
		l.pdf.Text(x, baseline, lead)
		x += leadW
	}
	if tail != "" {
		l.setRegular()
		l.pdf.Text(x, baseline, tail)
	}
}

// drawSegmentsRTL draws the word segments right to left from the box's
// right edge. The font's right-to-left mode reverses each segment's code
// points, so the logical first character lands rightmost. Reversal only
// applies to UTF-8 fonts, which is the only way an Arabic word reaches
// this path.
func (l *layout) drawSegmentsRTL(x, baseline float64, prefix, lead, tail string, prefixW, leadW float64) {
	l.pdf.RTL()
	l.setRegular()
	if prefix != "" {
		l.pdf.Text(x, baseline, prefix)
		x -= prefixW
	}
	if lead != "" {
		l.setBold()
		l.pdf.Text(x, baseline, lead)
		x -= leadW
	}
	if tail != "" {
		l.setRegular()
		l.pdf.Text(x, baseline, tail)
	}
	l.pdf.LTR()
}
