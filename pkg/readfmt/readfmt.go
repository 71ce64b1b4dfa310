// Package readfmt implements the Yusr reading pipeline, which reworks plain
// text into dyslexia-friendly HTML with correct bidirectional structure for
// Arabic, English and mixed-script content.
//
// This package provides:
//
// - Whitespace normalization and tokenization of raw text
// - Arabic script classification per word and per text
// - Lead-bold emphasis that bolds the first characters of every word
// - A document tree of paragraphs, direction runs and grouped words
// - HTML serialization with escaping handled by the serializer
//
// The pipeline is a chain of pure stages:
// Normalize → Tokenize → Build → RenderHTML, with Format running the whole
// chain. Stages can be used separately: a caller that already holds tokens
// can Build and walk the tree itself instead of rendering HTML.
//
// Key Types:
//
// - Token: An atomic unit of text, a word, space or newline run
// - Document: The built tree of paragraphs ready for serialization
// - Run: A maximal sequence of same-direction words inside a paragraph
// - Word: A single word with its ordinal, color group and emphasis split
// - RenderOptions: Group size, language hint and emphasis strength
//
// Main Functions:
//
// - Normalize: Canonicalizes whitespace and line endings
// - Tokenize: Splits text into word, space and newline tokens
// - DetectRTL: Classifies whole text as right-to-left or left-to-right
// - LeadBold: Splits one word into emphasized lead and remainder
// - Build: Assembles the document tree from tokens
// - RenderHTML: Serializes a document tree to an HTML fragment
// - Format: Runs the whole pipeline on raw text
package readfmt

// Render builds the document tree for tokens and serializes it to HTML.
func Render(tokens []Token, opts RenderOptions) (string, error) {
	return RenderHTML(Build(tokens, opts))
}

// Format runs the whole pipeline on raw text: normalization, tokenization,
// tree construction and HTML serialization.
func Format(text string, opts RenderOptions) (string, error) {
	return Render(Tokenize(Normalize(text)), opts)
}
