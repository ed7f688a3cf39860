package fielddecode

import (
	"encoding/base64"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantKind Kind
		want     string
	}{
		{name: "ruc", in: "MTIzNDU2Nzg5MA==", wantKind: Text, want: "1234567890"},
		{name: "surrounding whitespace", in: "  \n MTIzNDU2Nzg5MA==\t", wantKind: Text, want: "1234567890"},
		{name: "internal newlines", in: "MTIz\nNDU2\nNzg5MA==", wantKind: Text, want: "1234567890"},
		{name: "control bytes are valid utf-8", in: "AQID", wantKind: Text, want: "\x01\x02\x03"},
		{name: "latin-1 fallback", in: "/w==", wantKind: Text, want: "ÿ"},
		{name: "latin-1 accented", in: "Q0FN SU7P", wantKind: Text, want: "CAMINÏ"},
		{name: "url-safe underscore", in: "__8=", wantKind: Text, want: "ÿÿ"},
		{name: "utf-8 spanish", in: base64.StdEncoding.EncodeToString([]byte("Adquisición de vehículos")), wantKind: Text, want: "Adquisición de vehículos"},
		{name: "plain punctuation", in: "Av. Amazonas, Quito", wantKind: Unchanged, want: "Av. Amazonas, Quito"},
		{name: "wrong length", in: "Quito", wantKind: Unchanged, want: "Quito"},
		{name: "bad padding", in: "A===", wantKind: Unchanged, want: "A==="},
		{name: "dash dropped breaks length", in: "ABC-", wantKind: Unchanged, want: "ABC-"},
		{name: "email", in: "compras@municipio.gob.ec", wantKind: Unchanged, want: "compras@municipio.gob.ec"},
		{name: "empty", in: "   ", wantKind: Unchanged, want: ""},
		{name: "padding only", in: "====", wantKind: Text, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.in)
			if got.Kind != tt.wantKind {
				t.Fatalf("Decode(%q).Kind = %v, want %v", tt.in, got.Kind, tt.wantKind)
			}
			if got.Text != tt.want {
				t.Fatalf("Decode(%q).Text = %q, want %q", tt.in, got.Text, tt.want)
			}
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	samples := []string{
		"1790012345001",
		"GAD MUNICIPAL DEL CANTÓN CUENCA",
		"Adquisición de insumos médicos para el año 2024",
		"ñandú",
		"a",
		"ab",
	}
	for _, s := range samples {
		encoded := base64.StdEncoding.EncodeToString([]byte(s))
		got := Decode(encoded)
		v, ok := got.Value()
		if !ok || v != s {
			t.Errorf("round trip of %q via %q gave %q (kind %v)", s, encoded, v, got.Kind)
		}
	}
}

func TestResult_Value(t *testing.T) {
	if _, ok := (Result{Kind: Bytes, Raw: []byte{0xff}}).Value(); ok {
		t.Fatalf("expected byte results to be rejected")
	}
	if v, ok := (Result{Kind: Unchanged, Text: "x"}).Value(); !ok || v != "x" {
		t.Fatalf("expected unchanged results to pass through")
	}
}
