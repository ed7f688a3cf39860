package locator

import (
	"bytes"
	"testing"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		want      int
		wantFound bool
	}{
		{name: "empty", data: nil, wantFound: false},
		{name: "ten bytes no signature", data: []byte("0123456789"), wantFound: false},
		{name: "partial signature", data: []byte{'x', 'P', 'K', 0x03}, wantFound: false},
		{name: "at start", data: append([]byte{}, Signature...), want: 0, wantFound: true},
		{name: "after header", data: append([]byte("USHAY-HEADER\x00\x00"), Signature...), want: 14, wantFound: true},
		{
			name:      "first of several",
			data:      bytes.Join([][]byte{[]byte("ab"), Signature, []byte("cd"), Signature}, nil),
			want:      2,
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Locate(tt.data)
			if found != tt.wantFound {
				t.Fatalf("Locate() found = %v, want %v", found, tt.wantFound)
			}
			if found && got != tt.want {
				t.Fatalf("Locate() = %d, want %d", got, tt.want)
			}
		})
	}
}
