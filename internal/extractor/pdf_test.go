package extractor

import "testing"

func TestPageCount_InvalidData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not a pdf", []byte("just some text pretending to be a pdf")},
		{"png header", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PageCount(tt.data); err == nil {
				t.Error("expected error for non-PDF data")
			}
		})
	}
}
