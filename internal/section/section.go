// Package section tags document pages with canonical procurement section labels.
package section

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"ushay-etl/internal/domain"
)

// Rule pairs a section label with the heading pattern that announces it.
type Rule struct {
	Label   domain.SectionLabel
	Pattern *regexp.Regexp
}

// Matches reports whether text contains the rule's heading.
func (r Rule) Matches(text string) bool {
	return r.Pattern.MatchString(text)
}

// DefaultRules is the fixed, ordered registry of section headings.
var DefaultRules = []Rule{
	{domain.SectionConvocatoria, regexp.MustCompile(`(?i)(SECCION\s+I|1\.|I\.)\s*(CONVOCATORIA)`)},
	{domain.SectionObjetoContratacion, regexp.MustCompile(`(?i)(SECCION\s+II|2\.|II\.)\s*(OBJETO)`)},
	{domain.SectionCondicionesProcedimiento, regexp.MustCompile(`(?i)(SECCION\s+III|3\.|III\.)\s*(CONDICIONES)`)},
	{domain.SectionVerificacionEvaluacion, regexp.MustCompile(`(?i)(SECCION\s+IV|4\.|IV\.)\s*(VERIFICACION|EVALUACION)`)},
	{domain.SectionPuja, regexp.MustCompile(`(?i)(SECCION\s+V|5\.|V\.)\s*PUJA`)},
	{domain.SectionObligacionesPartes, regexp.MustCompile(`(?i)(SECCION\s+VI|6\.|VI\.)\s*OBLIGACIONES`)},
	{domain.SectionFormularios, regexp.MustCompile(`(?i)FORMULARIO(S)?`)},
}

// Segmenter applies an ordered rule registry to page text.
type Segmenter struct {
	rules []Rule
}

// NewSegmenter returns a segmenter over rules; nil means DefaultRules.
func NewSegmenter(rules []Rule) *Segmenter {
	if rules == nil {
		rules = DefaultRules
	}
	return &Segmenter{rules: rules}
}

// Labels returns every label whose heading occurs in text, in registry order.
func (s *Segmenter) Labels(text string) []domain.SectionLabel {
	folded := fold(text)
	var out []domain.SectionLabel
	for _, r := range s.rules {
		if r.Matches(folded) {
			out = append(out, r.Label)
		}
	}
	return out
}

// Segment emits one record per matched label for a single page. A page that
// matches nothing yields no records; a page matching several labels yields
// one record for each, with identical text.
func (s *Segmenter) Segment(pageText string, pageNumber int, documentID, sourceDocument string, date time.Time) []domain.SectionRecord {
	labels := s.Labels(pageText)
	if len(labels) == 0 {
		return nil
	}

	text := PageText(pageText)
	records := make([]domain.SectionRecord, 0, len(labels))
	for _, label := range labels {
		records = append(records, domain.SectionRecord{
			DocumentID:     documentID,
			SectionLabel:   label,
			PageText:       text,
			PageNumber:     pageNumber,
			SourceDocument: sourceDocument,
			ExtractionDate: date,
		})
	}
	return records
}

// SegmentPages runs Segment over every page of a document.
func (s *Segmenter) SegmentPages(pages []domain.Page, documentID, sourceDocument string, date time.Time) []domain.SectionRecord {
	var out []domain.SectionRecord
	for _, p := range pages {
		out = append(out, s.Segment(p.Text, p.Number, documentID, sourceDocument, date)...)
	}
	return out
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ")

// PageText is the stored form of a page: line breaks become spaces, then trimmed.
func PageText(text string) string {
	return strings.TrimSpace(lineBreaks.Replace(text))
}

// fold strips combining marks so "SECCIÓN" and "EVALUACIÓN" match the
// unaccented headings. Unicode spaces such as U+00A0 become ' ' since RE2's
// \s is ASCII only.
func fold(text string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r > unicode.MaxASCII && unicode.IsSpace(r) {
				return ' '
			}
			return r
		}),
		norm.NFC,
	)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}
