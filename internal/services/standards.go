package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StandardsSection is one block of the static standards/reference section.
// The set is loaded once at startup from REPORT_STANDARDS_PATH and rendered
// verbatim into every report.
type StandardsSection struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

type standardsFile struct {
	Sections []StandardsSection `yaml:"sections"`
}

func defaultStandardsSections() []StandardsSection {
	return []StandardsSection{
		{
			Heading: "Reference standards",
			Body: "Inspections are performed with reference to AS/NZS 2312.1 (Guide to the protection of " +
				"structural steel against atmospheric corrosion) and ISO 19840 (measurement of, and acceptance " +
				"criteria for, the thickness of dry films on rough surfaces).",
		},
		{
			Heading: "Measurement method",
			Body: "Dry film thickness readings are taken with a calibrated electromagnetic gauge. Batch " +
				"averages are compared against the specified minimum DFT for each member.",
		},
		{
			Heading: "Environmental conditions",
			Body: "Coating application requires the steel temperature to be at least 3 degrees Celsius above " +
				"the dew point at the time of application.",
		},
	}
}

func loadStandardsSections(path string) ([]StandardsSection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read standards file: %w", err)
	}
	var parsed standardsFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse standards file: %w", err)
	}
	if len(parsed.Sections) == 0 {
		return nil, fmt.Errorf("standards file %s has no sections", path)
	}
	return parsed.Sections, nil
}
