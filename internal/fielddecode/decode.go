// Package fielddecode recovers text from metadata fields that may or may not
// be Base64-encoded.
package fielddecode

import (
	"encoding/base64"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Kind tells how a Result was produced.
type Kind int

const (
	// Unchanged means decoding was skipped or failed; Text is the trimmed input.
	Unchanged Kind = iota
	// Text means the payload was Base64 and decoded to text.
	Text
	// Bytes means the payload decoded to bytes with no textual interpretation.
	Bytes
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Bytes:
		return "bytes"
	default:
		return "unchanged"
	}
}

// Result is the outcome of Decode. Exactly one of Text or Raw is meaningful,
// depending on Kind.
type Result struct {
	Kind Kind
	Text string
	Raw  []byte
}

// Value returns the textual value. ok is false for byte-valued results, which
// callers storing text must discard.
func (r Result) Value() (string, bool) {
	if r.Kind == Bytes {
		return "", false
	}
	return r.Text, true
}

var base64Like = regexp.MustCompile(`^[A-Za-z0-9+/=\-_]+$`)

var urlSafe = strings.NewReplacer("_", "/", "-", "")

// Decode trims s and, when it looks like Base64, decodes it. UTF-8 is
// preferred, Latin-1 is the fallback. Decode never fails: anything that does
// not decode cleanly comes back unchanged.
func Decode(s string) Result {
	trimmed := strings.TrimSpace(s)
	unchanged := Result{Kind: Unchanged, Text: trimmed}

	compact := strings.Join(strings.Fields(trimmed), "")
	if compact == "" || !base64Like.MatchString(compact) || len(compact)%4 != 0 {
		return unchanged
	}

	// padding alone decodes to nothing
	if strings.Trim(compact, "=") == "" {
		return Result{Kind: Text}
	}

	// '-' is outside the standard alphabet; lenient decoders skip it.
	raw, err := base64.StdEncoding.DecodeString(urlSafe.Replace(compact))
	if err != nil {
		return unchanged
	}

	if utf8.Valid(raw) {
		return Result{Kind: Text, Text: string(raw)}
	}
	latin, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return Result{Kind: Bytes, Raw: raw}
	}
	return Result{Kind: Text, Text: string(latin)}
}
