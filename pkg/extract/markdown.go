package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Markdown extracts the readable text of markdown content. YAML
// frontmatter is dropped, markup syntax is stripped by the parser, and
// headings, paragraphs and code blocks become separate paragraphs in the
// output.
func Markdown(content []byte) (string, error) {
	body := dropFrontmatter(content)

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(body))

	var buf bytes.Buffer
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			separate(&buf)
			buf.Write(inlineText(node, body))
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			separate(&buf)
		case *ast.Text:
			buf.Write(node.Segment.Value(body))
			if node.SoftLineBreak() {
				buf.WriteString("\n")
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			separate(&buf)
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(body))
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing markdown: %w", err)
	}

	return norm.NFC.String(strings.TrimSpace(buf.String())), nil
}

// separate starts a new paragraph in the output unless it would lead it.
func separate(buf *bytes.Buffer) {
	if buf.Len() > 0 {
		buf.WriteString("\n\n")
	}
}

// inlineText collects the text of an inline container such as a heading.
func inlineText(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		buf.Write(child.Text(source))
	}
	return bytes.TrimSpace(buf.Bytes())
}

// dropFrontmatter removes a leading YAML frontmatter block. Content whose
// leading block is not valid YAML is returned unchanged.
func dropFrontmatter(content []byte) []byte {
	var open int
	switch {
	case bytes.HasPrefix(content, []byte("---\n")):
		open = 4
	case bytes.HasPrefix(content, []byte("---\r\n")):
		open = 5
	default:
		return content
	}

	remaining := content[open:]
	endIdx := bytes.Index(remaining, []byte("\n---\n"))
	closeLen := 5
	if endIdx == -1 {
		endIdx = bytes.Index(remaining, []byte("\n---\r\n"))
		closeLen = 6
		if endIdx == -1 {
			return content
		}
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal(remaining[:endIdx], &frontmatter); err != nil {
		return content
	}

	contentStart := open + endIdx + closeLen
	if contentStart >= len(content) {
		return []byte{}
	}
	return content[contentStart:]
}
