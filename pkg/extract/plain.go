package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Plain canonicalizes already plain text: a UTF-8 byte order mark is
// dropped and the text is NFC normalized. Bytes that are not valid UTF-8
// are decoded as Latin-1, the same fallback used for HTML documents with
// a legacy charset.
func Plain(content []byte) (string, error) {
	if !utf8.Valid(content) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
		if err != nil {
			return "", fmt.Errorf("decoding text: %w", err)
		}
		content = decoded
	}
	text := strings.TrimPrefix(string(content), "\uFEFF")
	return norm.NFC.String(strings.TrimSpace(text)), nil
}
