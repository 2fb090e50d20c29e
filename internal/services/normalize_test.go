package services

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestNormalizedPageSize(t *testing.T) {
	tests := []struct {
		name  string
		wpx   int
		hpx   int
		wantW float64
		wantH float64
	}{
		{"landscape", 2000, 1000, a4LongSidePt, a4LongSidePt / 2},
		{"portrait", 1000, 2000, a4LongSidePt / 2, a4LongSidePt},
		{"square", 800, 800, a4LongSidePt, a4LongSidePt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := normalizedPageSize(tt.wpx, tt.hpx)
			if math.Abs(w-tt.wantW) > 0.01 || math.Abs(h-tt.wantH) > 0.01 {
				t.Fatalf("want=%.2fx%.2f got=%.2fx%.2f", tt.wantW, tt.wantH, w, h)
			}
			if w > a4LongSidePt+0.01 || h > a4LongSidePt+0.01 {
				t.Fatalf("longer side must be pinned to %v, got %.2fx%.2f", a4LongSidePt, w, h)
			}
		})
	}
}

func TestNormalizeImage_SinglePagePDF(t *testing.T) {
	svc := NewNormalizerService(nopLog())
	raw := makeTestPNG(t, 64, 48)

	pdfBytes, size, err := svc.NormalizeImage(raw, "site_photo.png")
	if err != nil {
		t.Fatalf("NormalizeImage: %v", err)
	}
	if size != int64(len(pdfBytes)) {
		t.Fatalf("reported size %d does not match output length %d", size, len(pdfBytes))
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if got := pdfPageCount(t, pdfBytes); got != 1 {
		t.Fatalf("page count: want=1 got=%d", got)
	}
}

func TestNormalizeImage_RejectsGarbage(t *testing.T) {
	svc := NewNormalizerService(nopLog())
	_, _, err := svc.NormalizeImage([]byte("definitely not an image"), "broken.jpg")
	if err == nil {
		t.Fatalf("expected decode failure")
	}
	var conv *ConversionFailedError
	if !errors.As(err, &conv) {
		t.Fatalf("want ConversionFailedError, got %T: %v", err, err)
	}
	if conv.Filename != "broken.jpg" {
		t.Fatalf("error should carry filename, got %q", conv.Filename)
	}
}
