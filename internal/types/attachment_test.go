package types

import "testing"

func TestAttachmentTitle(t *testing.T) {
	display := "Calibration Certificate"
	blank := ""
	tests := []struct {
		name     string
		display  *string
		original string
		want     string
	}{
		{"display title wins", &display, "cert_2026.pdf", "Calibration Certificate"},
		{"blank display falls back", &blank, "cert_2026.pdf", "cert_2026"},
		{"nil display strips extension", nil, "weld photos.jpeg", "weld photos"},
		{"no extension", nil, "README", "README"},
		{"dot before separator is kept", nil, "scans.v2/README", "scans.v2/README"},
		{"multiple dots", nil, "itp.records.final.pdf", "itp.records.final"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attachment{DisplayTitle: tt.display, OriginalName: tt.original}
			if got := a.Title(); got != tt.want {
				t.Fatalf("Title(): want=%q got=%q", tt.want, got)
			}
		})
	}
}
