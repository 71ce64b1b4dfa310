package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// blockTags are elements whose end marks a paragraph boundary in the
// extracted text.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "ul": true, "ol": true, "dl": true, "dd": true, "dt": true,
	"blockquote": true, "pre": true, "table": true, "tr": true,
	"header": true, "footer": true, "figcaption": true,
}

// HTML extracts the readable text of an HTML document. Script, style and
// noscript content is removed, block elements become paragraph
// boundaries and pages declaring a legacy charset are decoded to UTF-8
// before parsing. Documents with a <body> contribute only its content.
func HTML(content []byte) (string, error) {
	decoded, err := decodeLegacyCharset(content)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	root := doc.Selection
	if body := doc.Find("body").First(); body.Length() > 0 {
		root = body
	}

	var b strings.Builder
	for _, node := range root.Nodes {
		writeNodeText(&b, node)
	}
	return norm.NFC.String(strings.TrimSpace(b.String())), nil
}

// writeNodeText collects the text below n, inserting line breaks for <br>
// and blank lines after block elements.
func writeNodeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode, html.DocumentNode:
	default:
		return
	}

	if n.Data == "br" {
		b.WriteString("\n")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(b, c)
	}
	if blockTags[n.Data] {
		b.WriteString("\n\n")
	}
}

// decodeLegacyCharset converts documents that declare a single-byte
// charset in their first kilobyte to UTF-8. Documents without a
// declaration are assumed to already be UTF-8.
func decodeLegacyCharset(content []byte) ([]byte, error) {
	head := strings.ToLower(string(content[:min(len(content), 1024)]))
	idx := strings.Index(head, "charset=")
	if idx < 0 {
		return content, nil
	}

	fields := strings.FieldsFunc(head[idx+len("charset="):], func(r rune) bool {
		return r == '"' || r == '\'' || r == ';' || r == '>' || r == ' ' || r == '/'
	})
	if len(fields) == 0 {
		return content, nil
	}
	switch fields[0] {
	case "utf-8", "utf8":
		return content, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("decoding %s content: %w", fields[0], err)
	}
	return decoded, nil
}
