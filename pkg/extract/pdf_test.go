package extract

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"
)

// fixturePDF builds an in-memory PDF with one page per entry; each entry
// is the lines printed on that page. An entry with no lines produces a
// page without text.
func fixturePDF(t *testing.T, pages ...[]string) []byte {
	t.Helper()

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, lines := range pages {
		doc.AddPage()
		for _, line := range lines {
			doc.CellFormat(0, 16, line, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("building fixture pdf: %v", err)
	}
	return buf.Bytes()
}

func TestPDFExtractsText(t *testing.T) {
	content := fixturePDF(t, []string{"Hello world reading test"})

	got, err := PDF(content)
	if err != nil {
		t.Fatalf("PDF failed: %v", err)
	}
	if !strings.Contains(got, "Hello world reading test") {
		t.Errorf("PDF = %q, want it to contain the page text", got)
	}
}

func TestPDFSeparatesPages(t *testing.T) {
	content := fixturePDF(t,
		[]string{"page one text"},
		[]string{"page two text"},
	)

	got, err := PDF(content)
	if err != nil {
		t.Fatalf("PDF failed: %v", err)
	}
	if !strings.Contains(got, "page one text") || !strings.Contains(got, "page two text") {
		t.Fatalf("PDF = %q, want both pages extracted", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Errorf("PDF = %q, want a blank line between pages", got)
	}
}

func TestPDFKeepsLineStructure(t *testing.T) {
	content := fixturePDF(t, []string{"first line", "second line"})

	got, err := PDF(content)
	if err != nil {
		t.Fatalf("PDF failed: %v", err)
	}
	first := strings.Index(got, "first line")
	second := strings.Index(got, "second line")
	if first == -1 || second == -1 {
		t.Fatalf("PDF = %q, want both lines extracted", got)
	}
	if first > second {
		t.Errorf("PDF = %q, want top line extracted first", got)
	}
}

func TestPDFNoTextLayer(t *testing.T) {
	content := fixturePDF(t, nil)

	_, err := PDF(content)
	if !errors.Is(err, ErrNoTextLayer) {
		t.Errorf("PDF error = %v, want ErrNoTextLayer", err)
	}
}

func TestPDFInvalidInput(t *testing.T) {
	_, err := PDF([]byte("not a pdf at all"))
	if err == nil {
		t.Fatal("expected error for invalid PDF content")
	}
	if errors.Is(err, ErrNoTextLayer) {
		t.Errorf("invalid input reported as missing text layer: %v", err)
	}
}
