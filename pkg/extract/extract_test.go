package extract

import (
	"strings"
	"testing"
)

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"doc.md", "text/markdown"},
		{"doc.markdown", "text/markdown"},
		{"page.html", "text/html"},
		{"page.htm", "text/html"},
		{"file.pdf", "application/pdf"},
		{"note.txt", "text/plain"},
		{"archive.bin", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := DetectContentType(tt.path, nil)
			// The platform MIME database may append charset parameters.
			if !strings.Contains(got, tt.want) {
				t.Errorf("DetectContentType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestTextDispatch(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
		content     string
		want        string
	}{
		{
			name:    "plain by extension",
			path:    "note.txt",
			content: "just some text",
			want:    "just some text",
		},
		{
			name:        "plain by content type",
			path:        "upload",
			contentType: "text/plain; charset=utf-8",
			content:     "typed text",
			want:        "typed text",
		},
		{
			name:    "markdown by extension",
			path:    "doc.md",
			content: "# Title\n\nBody here.",
			want:    "Title\n\nBody here.",
		},
		{
			name:    "html by extension",
			path:    "page.html",
			content: "<html><body><p>Para text</p></body></html>",
			want:    "Para text",
		},
		{
			name:        "unknown type treated as plain",
			path:        "data",
			contentType: "application/octet-stream",
			content:     "fallback text",
			want:        "fallback text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.path, tt.contentType, []byte(tt.content))
			if err != nil {
				t.Fatalf("Text failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlain(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"passthrough", []byte("hello world"), "hello world"},
		{"trims", []byte("  hello  \n"), "hello"},
		{"drops bom", []byte("\uFEFFhello"), "hello"},
		{"latin1 fallback", []byte{'c', 'a', 'f', 0xE9}, "café"},
		{"nfc composition", []byte("café"), "café"},
		{"arabic", []byte("نص عربي"), "نص عربي"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Plain(tt.in)
			if err != nil {
				t.Fatalf("Plain failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Plain(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
