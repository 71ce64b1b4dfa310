package readfmt

// TokenKind identifies the class of a token produced by Tokenize.
type TokenKind int

const (
	// KindWord is a run of non-whitespace characters, attached punctuation included.
	KindWord TokenKind = iota
	// KindSpace is a run of spaces or tabs, normalized to a single space.
	KindSpace
	// KindNewline is a run of line breaks: a single break or a paragraph break.
	KindNewline
)

func (k TokenKind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindSpace:
		return "space"
	case KindNewline:
		return "newline"
	default:
		return "unknown"
	}
}

// Line and paragraph break markers used as newline token values.
const (
	lineBreakMark      = "\n"
	paragraphBreakMark = "\n\n"
)

// Token is an atomic unit of tokenized text. Word values hold the source
// characters verbatim and never contain whitespace; space values are a
// single space; newline values are "\n" for one line break and "\n\n" for
// a paragraph break.
type Token struct {
	Kind  TokenKind
	Value string
}

// IsParagraphBreak reports whether the token marks a paragraph boundary.
func (t Token) IsParagraphBreak() bool {
	return t.Kind == KindNewline && t.Value == paragraphBreakMark
}

// Tokenize splits text into word, space and newline tokens in a single
// left-to-right pass. A run of line breaks becomes one newline token whose
// value distinguishes a single break from a paragraph break (two or more).
// A run of spaces or tabs becomes one space token regardless of its length,
// so the tokenizer is robust to input that skipped Normalize. Empty input
// yields no tokens.
//
// For normalized text, concatenating all token values reconstructs the
// input exactly.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	for i := 0; i < len(text); {
		switch c := text[i]; {
		case c == '\n' || c == '\r':
			breaks := 0
			for i < len(text) && (text[i] == '\n' || text[i] == '\r') {
				// \r\n counts as one break.
				if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
					i++
				}
				breaks++
				i++
			}
			value := lineBreakMark
			if breaks >= 2 {
				value = paragraphBreakMark
			}
			tokens = append(tokens, Token{Kind: KindNewline, Value: value})
		case c == ' ' || c == '\t':
			for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
				i++
			}
			tokens = append(tokens, Token{Kind: KindSpace, Value: " "})
		default:
			start := i
			for i < len(text) && !isTokenBoundary(text[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: KindWord, Value: text[start:i]})
		}
	}
	return tokens
}

// isTokenBoundary reports whether b ends a word run. Only the fixed
// whitespace set splits words; all other bytes, including multi-byte
// UTF-8 sequences, belong to the word.
func isTokenBoundary(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
