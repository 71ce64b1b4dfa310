package readfmt

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Word color classes alternate with group parity.
const (
	groupClassEven = "group-a"
	groupClassOdd  = "group-b"
)

// RenderHTML serializes a document tree to an HTML fragment. Every
// paragraph becomes a <p dir>, every direction run a <bdi dir>, every word
// a <span class="word group-a|group-b" data-ord dir> and every emphasized
// lead a nested <b>. Soft line breaks become <br/>. All text passes
// through the HTML serializer, so markup-significant characters in the
// source arrive escaped and inert.
func RenderHTML(doc *Document) (string, error) {
	var buf bytes.Buffer
	for _, para := range doc.Paragraphs {
		if err := html.Render(&buf, paragraphNode(para)); err != nil {
			return "", fmt.Errorf("rendering paragraph: %w", err)
		}
	}
	return buf.String(), nil
}

func paragraphNode(p *Paragraph) *html.Node {
	node := elem(atom.P, "p", html.Attribute{Key: "dir", Val: p.Dir.String()})
	for _, item := range p.Items {
		switch it := item.(type) {
		case *Run:
			node.AppendChild(runNode(it))
		case *LineBreak:
			node.AppendChild(elem(atom.Br, "br"))
		case *Space:
			node.AppendChild(text(" "))
		}
	}
	return node
}

func runNode(r *Run) *html.Node {
	node := elem(atom.Bdi, "bdi", html.Attribute{Key: "dir", Val: r.Dir.String()})
	for _, item := range r.Items {
		switch it := item.(type) {
		case *Word:
			node.AppendChild(wordNode(it))
		case *Space:
			node.AppendChild(text(" "))
		}
	}
	return node
}

func wordNode(w *Word) *html.Node {
	class := groupClassEven
	if w.Group%2 != 0 {
		class = groupClassOdd
	}
	node := elem(atom.Span, "span",
		html.Attribute{Key: "class", Val: "word " + class},
		html.Attribute{Key: "data-ord", Val: strconv.Itoa(w.Ordinal)},
		html.Attribute{Key: "dir", Val: w.Dir.String()},
	)
	if w.Emphasis.Lead == "" {
		node.AppendChild(text(w.Text))
		return node
	}
	if w.Emphasis.Prefix != "" {
		node.AppendChild(text(w.Emphasis.Prefix))
	}
	lead := elem(atom.B, "b")
	lead.AppendChild(text(w.Emphasis.Lead))
	node.AppendChild(lead)
	if w.Emphasis.Tail != "" {
		node.AppendChild(text(w.Emphasis.Tail))
	}
	return node
}

func elem(a atom.Atom, tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: tag, Attr: attrs}
}

func text(value string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: value}
}
