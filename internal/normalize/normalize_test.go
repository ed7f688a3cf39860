package normalize

import (
	"testing"

	"ushay-etl/internal/domain"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"line breaks", "uno\r\ndos\ntres\rcuatro", "uno dos tres cuatro"},
		{"collapse whitespace", "  a    b \t\t c  ", "a b c"},
		{"signature tail", "Plazo de 30 días. Firma electrónica: JUAN PEREZ 2024", "Plazo de 30 días."},
		{"signature without accent", "texto FIRMA ELECTRONICA xyz", "texto"},
		{"bare firma", "Documento firma del director", "Documento"},
		{"page marker", "Condiciones Página 3 de 12 generales", "Condiciones  generales"},
		{"page marker short", "Fin PÁGINA 7", "Fin"},
		{"bullets", "• item uno ► item dos", "- item uno - item dos"},
		{"no-break spaces collapse", "a\u00a0\u00a0b \u3000c", "a b c"},
		{"no-break space in page marker", "Condiciones Página\u00a03 de\u00a012 generales", "Condiciones  generales"},
		{"no-break space in signature", "Plazo.\u00a0Firma\u00a0electrónica: X", "Plazo."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Fatalf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRecords(t *testing.T) {
	in := []domain.SectionRecord{
		{DocumentID: "d", SectionLabel: domain.SectionPuja, PageText: "5. PUJA\n\nPágina 2", PageNumber: 2},
	}
	out := Records(in)
	if out[0].PageText != "5. PUJA" {
		t.Fatalf("unexpected text %q", out[0].PageText)
	}
	if in[0].PageText != "5. PUJA\n\nPágina 2" {
		t.Fatalf("input records must not be modified")
	}
	if out[0].PageNumber != 2 || out[0].SectionLabel != domain.SectionPuja {
		t.Fatalf("metadata must be preserved")
	}
}
