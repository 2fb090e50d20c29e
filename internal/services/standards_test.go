package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStandardsSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standards.yaml")
	content := `sections:
  - heading: Reference standards
    body: Inspections reference AS/NZS 2312.1.
  - heading: Measurement method
    body: Calibrated electromagnetic gauge.
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	sections, err := loadStandardsSections(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("sections: want=2 got=%d", len(sections))
	}
	if sections[0].Heading != "Reference standards" {
		t.Fatalf("heading: got %q", sections[0].Heading)
	}
}

func TestLoadStandardsSections_Errors(t *testing.T) {
	if _, err := loadStandardsSections(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, []byte("sections: []\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := loadStandardsSections(empty); err == nil {
		t.Fatalf("expected error for empty section list")
	}
}

func TestDefaultStandardsSections(t *testing.T) {
	if len(defaultStandardsSections()) == 0 {
		t.Fatalf("defaults must not be empty")
	}
}
