package extract

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoTextLayer reports a structurally valid PDF whose pages carry no
// extractable text. This usually means a scanned document, so callers can
// route the file to OCR instead of failing.
var ErrNoTextLayer = errors.New("pdf has no text layer")

// wordSpaceRatio is the fraction of the font size an X gap between two
// fragments must exceed before it counts as a word boundary.
const wordSpaceRatio = 0.3

// PDF extracts the text layer of a PDF document. Text is read row by row
// to keep line structure, each page is cleaned of extraction artifacts
// and pages are separated by blank lines. A valid PDF with no text at all
// returns ErrNoTextLayer.
func PDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		if text := CleanPage(pageText(page)); text != "" {
			pages = append(pages, text)
		}
	}

	result := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if result == "" {
		return "", ErrNoTextLayer
	}
	return result, nil
}

// pageText reads one page as lines of text. Extraction yields positioned
// fragments, often single glyphs; fragments on a row are joined left to
// right with a space inserted wherever the X gap exceeds wordSpaceRatio
// of the font size. A gap-inserted space can split a letter from its
// combining marks; CleanPage repairs that afterwards. Pages that cannot
// be decoded yield no text rather than failing the whole document.
func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	// Top of the page first. PDF y coordinates grow upward.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	var lines []string
	for _, row := range rows {
		items := make([]pdf.Text, len(row.Content))
		copy(items, row.Content)
		sort.Slice(items, func(i, j int) bool {
			return items[i].X < items[j].X
		})

		var line strings.Builder
		for i, item := range items {
			if i > 0 {
				prev := items[i-1]
				if item.X-(prev.X+prev.W) > wordSpace(prev.FontSize) {
					line.WriteByte(' ')
				}
			}
			line.WriteString(item.S)
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// wordSpace returns the gap width that separates words at a font size,
// with a fixed fallback when the size is unknown.
func wordSpace(fontSize float64) float64 {
	if fontSize == 0 {
		return 3.0
	}
	return wordSpaceRatio * fontSize
}
