// Package extract pulls plain text out of uploaded documents so the
// reading pipeline can format it.
//
// This package provides:
//
// - Text extraction from PDF, HTML, Markdown and plain text content
// - Content type detection from file extensions
// - Repair of Arabic combining marks that PDF extraction detaches
// - A sentinel error for PDFs without a text layer, so callers can fall
//   back to OCR
//
// Extracted text keeps its paragraph structure but is not whitespace
// canonical; callers normalize it before rendering.
//
// Main Functions:
//
// - Text: Extracts plain text from content of any supported type
// - PDF: Extracts the text layer of a PDF document
// - HTML: Extracts the readable text of an HTML document
// - Markdown: Extracts the readable text of markdown content
// - DetectContentType: Resolves a MIME type from a file path
package extract

import (
	"mime"
	"path/filepath"
	"strings"
)

// Text extracts the plain text of content. The content type decides the
// extractor; when it is empty the type is detected from the path. Types
// without a dedicated extractor are treated as plain text.
func Text(path, contentType string, content []byte) (string, error) {
	if contentType == "" {
		contentType = DetectContentType(path, content)
	}
	switch {
	case strings.Contains(contentType, "application/pdf"):
		return PDF(content)
	case strings.Contains(contentType, "text/html"):
		return HTML(content)
	case strings.Contains(contentType, "text/markdown"),
		strings.Contains(contentType, "text/x-markdown"):
		return Markdown(content)
	default:
		return Plain(content)
	}
}

// DetectContentType resolves a MIME type for a file path, falling back to
// a fixed table for extensions the platform MIME database may not know.
func DetectContentType(path string, content []byte) string {
	ext := filepath.Ext(path)
	if ext != "" {
		if mimeType := mime.TypeByExtension(ext); mimeType != "" {
			return mimeType
		}
	}

	switch strings.ToLower(ext) {
	case ".md", ".markdown", ".mdx":
		return "text/markdown"
	case ".html", ".htm":
		return "text/html"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	}

	return "application/octet-stream"
}
