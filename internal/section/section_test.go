package section

import (
	"reflect"
	"testing"
	"time"

	"ushay-etl/internal/domain"
)

var testDate = time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)

func TestSegmenter_Labels(t *testing.T) {
	seg := NewSegmenter(nil)

	tests := []struct {
		name string
		text string
		want []domain.SectionLabel
	}{
		{"condiciones heading", "SECCION III. CONDICIONES", []domain.SectionLabel{domain.SectionCondicionesProcedimiento}},
		{"convocatoria numeric", "1. CONVOCATORIA\nSe convoca a...", []domain.SectionLabel{domain.SectionConvocatoria}},
		{"case insensitive", "seccion ii objeto de la contratación", []domain.SectionLabel{domain.SectionObjetoContratacion}},
		{"accented heading", "SECCIÓN IV EVALUACIÓN DE OFERTAS", []domain.SectionLabel{domain.SectionVerificacionEvaluacion}},
		{"puja", "V. PUJA", []domain.SectionLabel{domain.SectionPuja}},
		{"obligaciones", "6. OBLIGACIONES DE LAS PARTES", []domain.SectionLabel{domain.SectionObligacionesPartes}},
		{"formularios anywhere", "ver formulario único de oferta", []domain.SectionLabel{domain.SectionFormularios}},
		{
			name: "multiple labels in registry order",
			text: "FORMULARIOS\n5. PUJA\n1. CONVOCATORIA",
			want: []domain.SectionLabel{domain.SectionConvocatoria, domain.SectionPuja, domain.SectionFormularios},
		},
		{"no-break space after seccion", "SECCION\u00a0III CONDICIONES", []domain.SectionLabel{domain.SectionCondicionesProcedimiento}},
		{"no-break space before keyword", "SECCION III\u00a0CONDICIONES", []domain.SectionLabel{domain.SectionCondicionesProcedimiento}},
		{"narrow no-break space", "5.\u202fPUJA", []domain.SectionLabel{domain.SectionPuja}},
		{"no heading", "Texto sin encabezados", nil},
		{"empty page", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seg.Labels(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Labels(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSegmenter_Segment(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Segment("  SECCION III. CONDICIONES\r\nDEL PROCEDIMIENTO\n", 4, "PROC-01", "pliego_tecnicas.pdf", testDate)
	want := []domain.SectionRecord{{
		DocumentID:     "PROC-01",
		SectionLabel:   domain.SectionCondicionesProcedimiento,
		PageText:       "SECCION III. CONDICIONES DEL PROCEDIMIENTO",
		PageNumber:     4,
		SourceDocument: "pliego_tecnicas.pdf",
		ExtractionDate: testDate,
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Segment() = %+v, want %+v", got, want)
	}
}

func TestSegmenter_SegmentDuplicatesAcrossLabels(t *testing.T) {
	seg := NewSegmenter(nil)
	got := seg.Segment("1. CONVOCATORIA ... FORMULARIO 1", 1, "d", "p.pdf", testDate)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].PageText != got[1].PageText {
		t.Fatalf("records for the same page must share text")
	}
}

func TestSegmenter_SegmentPages(t *testing.T) {
	seg := NewSegmenter(nil)
	pages := []domain.Page{
		{Number: 1, Text: "Portada"},
		{Number: 2, Text: "SECCION I CONVOCATORIA"},
		{Number: 3, Text: "2. OBJETO"},
	}
	got := seg.SegmentPages(pages, "doc", "doc.pdf", testDate)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].PageNumber != 2 || got[1].PageNumber != 3 {
		t.Fatalf("unexpected pages: %d, %d", got[0].PageNumber, got[1].PageNumber)
	}
}

func TestSegmenter_CustomRules(t *testing.T) {
	seg := NewSegmenter([]Rule{DefaultRules[4]})
	if got := seg.Labels("1. CONVOCATORIA 5. PUJA"); !reflect.DeepEqual(got, []domain.SectionLabel{domain.SectionPuja}) {
		t.Fatalf("unexpected labels: %v", got)
	}
}
