package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/types"
)

func TestAppendixLabel(t *testing.T) {
	tests := []struct {
		pos  int
		want string
	}{
		{0, ""},
		{-3, ""},
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}
	for _, tt := range tests {
		if got := AppendixLabel(tt.pos); got != tt.want {
			t.Fatalf("AppendixLabel(%d): want=%q got=%q", tt.pos, tt.want, got)
		}
	}
}

func TestBuildDividerPage_SinglePage(t *testing.T) {
	svc := NewDividerService(nopLog())
	attachment := &types.Attachment{
		ID:               uuid.New(),
		OriginalName:     "weld_photos.jpg",
		DisplayTitle:     strPtr("Weld Repair Photos"),
		AppendixCategory: strPtr("Site Photos"),
		UploaderName:     "J. Inspector",
		UploadedAt:       time.Date(2026, time.February, 10, 14, 5, 0, 0, time.UTC),
	}
	pctx := PackContext{
		ProjectName: "Harbour Bridge Stage 2",
		ClientName:  "Coastal Constructions",
		SiteAddress: "1 Wharf Rd, Newcastle",
	}

	raw, err := svc.BuildDividerPage(3, attachment, pctx)
	if err != nil {
		t.Fatalf("BuildDividerPage: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("divider output is not a PDF")
	}
	if got := pdfPageCount(t, raw); got != 1 {
		t.Fatalf("divider page count: want=1 got=%d", got)
	}
}

func TestBuildDividerPage_NilAttachment(t *testing.T) {
	svc := NewDividerService(nopLog())
	if _, err := svc.BuildDividerPage(1, nil, PackContext{}); err == nil {
		t.Fatalf("expected error for nil attachment")
	}
}
