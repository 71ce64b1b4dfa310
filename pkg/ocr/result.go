package ocr

import (
	"sort"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// Result is the text recovered from one processed document.
type Result struct {
	// Text is the full recovered text, pages joined by blank lines.
	Text string
	// Pages holds the per-page texts in page order.
	Pages []PageText
	// Languages lists detected language codes, most confident first.
	Languages []string
}

// PageText is the recovered text of a single page.
type PageText struct {
	Number int
	Text   string
}

// resultFromProto maps a Document AI response onto a Result.
func resultFromProto(doc *documentaipb.Document) *Result {
	if doc == nil {
		return &Result{}
	}

	result := &Result{}
	var pageTexts []string
	for i, page := range doc.Pages {
		text := strings.TrimSpace(textFromLayout(page.Layout, doc.Text))
		result.Pages = append(result.Pages, PageText{Number: i + 1, Text: text})
		if text != "" {
			pageTexts = append(pageTexts, text)
		}
	}
	result.Text = strings.Join(pageTexts, "\n\n")
	if len(doc.Pages) == 0 {
		result.Text = strings.TrimSpace(doc.Text)
	}
	result.Languages = detectedLanguages(doc)
	return result
}

// textFromLayout resolves a layout's text anchor segments against the
// document text. Anchor indexes are rune offsets; out-of-range segments
// are clamped.
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText string) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}

	runes := []rune(fullText)
	var b strings.Builder
	for _, seg := range layout.TextAnchor.TextSegments {
		start, end := int(seg.StartIndex), int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start > end {
			start = end
		}
		b.WriteString(string(runes[start:end]))
	}
	return b.String()
}

// detectedLanguages aggregates per-page language detections across the
// document, weighting each code by its summed confidence.
func detectedLanguages(doc *documentaipb.Document) []string {
	weights := map[string]float32{}
	for _, page := range doc.Pages {
		for _, lang := range page.DetectedLanguages {
			if lang.LanguageCode == "" {
				continue
			}
			weights[lang.LanguageCode] += lang.Confidence
		}
	}

	codes := make([]string, 0, len(weights))
	for code := range weights {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if weights[codes[i]] != weights[codes[j]] {
			return weights[codes[i]] > weights[codes[j]]
		}
		return codes[i] < codes[j]
	})
	return codes
}
