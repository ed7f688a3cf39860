package chunk

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// WordTokenizer splits text on Unicode word boundaries (UAX #29), dropping
// whitespace segments. Punctuation marks come out as their own tokens.
type WordTokenizer struct{}

// Tokenize implements domain.Tokenizer.
func (WordTokenizer) Tokenize(text string) []string {
	var out []string
	tokens := words.FromString(text)
	for tokens.Next() {
		tok := tokens.Value()
		if strings.TrimFunc(tok, unicode.IsSpace) == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}
