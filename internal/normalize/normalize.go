// Package normalize cleans section page text before chunking.
package normalize

import (
	"regexp"
	"strings"

	"ushay-etl/internal/domain"
)

// space is any Unicode whitespace; RE2's \s alone misses U+00A0 and friends.
const space = `[\s\p{Z}\x{85}\x{1c}-\x{1f}]`

var (
	lineBreaks    = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
	multiSpace    = regexp.MustCompile(space + `{2,}`)
	signatureTail = regexp.MustCompile(`(?i)(firma(` + space + `+electr[oó]nica)?)+.*`)
	pageMarker    = regexp.MustCompile(`(?i)página` + space + `*\d+(` + space + `+de` + space + `+\d+)?`)
	bullets       = regexp.MustCompile(`[•·◆►▶]`)
)

// Clean flattens text onto one line, drops the electronic signature block and
// page markers, and replaces decorative bullets with "-".
func Clean(text string) string {
	if text == "" {
		return ""
	}
	t := strings.TrimSpace(lineBreaks.Replace(text))
	t = multiSpace.ReplaceAllString(t, " ")
	t = signatureTail.ReplaceAllString(t, "")
	t = pageMarker.ReplaceAllString(t, "")
	t = bullets.ReplaceAllString(t, "-")
	return strings.TrimSpace(t)
}

// Records returns copies of records with cleaned page text. Records whose
// text is empty after cleaning are kept; chunking skips them.
func Records(records []domain.SectionRecord) []domain.SectionRecord {
	out := make([]domain.SectionRecord, len(records))
	for i, r := range records {
		r.PageText = Clean(r.PageText)
		out[i] = r
	}
	return out
}
