package domain

import (
	"reflect"
	"testing"
)

// TestFields_SetOverwrites checks that a repeated tag keeps its first position
// but takes the latest value.
func TestFields_SetOverwrites(t *testing.T) {
	f := NewFields()
	f.Set("RUC", "1")
	f.Set("FECHA", "2024-01-01")
	f.Set("RUC", "2")

	if got, _ := f.Get("RUC"); got != "2" {
		t.Fatalf("expected RUC=2, got %q", got)
	}
	if !reflect.DeepEqual(f.Tags(), []string{"RUC", "FECHA"}) {
		t.Fatalf("unexpected tag order: %v", f.Tags())
	}
	if f.Len() != 2 {
		t.Fatalf("expected 2 tags, got %d", f.Len())
	}
}

func TestFields_Project(t *testing.T) {
	f := NewFields()
	f.Set("RUC", "1790012345001")
	f.Set("EXTRA", "x")

	got := f.Project([]string{"RUC", "PLAZO"})
	want := map[string]string{"RUC": "1790012345001", "PLAZO": ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Project() = %v, want %v", got, want)
	}
}

func TestFields_NilSafe(t *testing.T) {
	var f *Fields
	if f.Len() != 0 {
		t.Fatalf("expected nil fields to be empty")
	}
	if _, ok := f.Get("RUC"); ok {
		t.Fatalf("expected missing tag on nil fields")
	}
	if len(f.Map()) != 0 || f.List() != nil || f.Tags() != nil {
		t.Fatalf("expected empty views on nil fields")
	}
}

func TestContainerProbe_Offset(t *testing.T) {
	tests := []struct {
		name   string
		probe  ContainerProbe
		want   int
		hasSig bool
	}{
		{name: "absent", probe: ContainerProbe{}, want: -1, hasSig: false},
		{name: "at zero", probe: ContainerProbe{SignatureOffset: intPtr(0)}, want: 0, hasSig: true},
		{name: "after header", probe: ContainerProbe{SignatureOffset: intPtr(512)}, want: 512, hasSig: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.probe.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
			if got := tt.probe.HasSignature(); got != tt.hasSig {
				t.Errorf("HasSignature() = %v, want %v", got, tt.hasSig)
			}
		})
	}
}

func TestMissingEntryError(t *testing.T) {
	err := &MissingEntryError{Name: MetadataEntryName}
	if err.Error() != "proceso.xml not found" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if !err.Is(ErrMissingEntry) {
		t.Fatalf("expected MissingEntryError to match ErrMissingEntry")
	}
}

func intPtr(v int) *int { return &v }
