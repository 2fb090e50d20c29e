package services

import (
	"encoding/json"
	"math"

	"gorm.io/datatypes"
)

// DewPointConformanceThreshold is the minimum steel-temperature margin above
// dew point (°C) accepted for coating application.
const DewPointConformanceThreshold = 3.0

type readingStats struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// computeReadingStats returns population statistics over a set of DFT gauge
// readings. Zero-count input yields a zero-valued stats struct.
func computeReadingStats(readings []float64) readingStats {
	s := readingStats{Count: len(readings)}
	if s.Count == 0 {
		return s
	}
	s.Min = readings[0]
	s.Max = readings[0]
	sum := 0.0
	for _, v := range readings {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(s.Count)
	varSum := 0.0
	for _, v := range readings {
		d := v - s.Mean
		varSum += d * d
	}
	s.StdDev = math.Sqrt(varSum / float64(s.Count))
	return s
}

// decodeReadings unpacks the JSON readings column into a float slice.
func decodeReadings(raw datatypes.JSON) ([]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var readings []float64
	if err := json.Unmarshal(raw, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

// dewPointSpread returns steelTemp − dewPoint and whether the spread meets
// the conformance threshold. ok is false when either reading is missing.
func dewPointSpread(steelTemp, dewPoint *float64) (spread float64, conforms bool, ok bool) {
	if steelTemp == nil || dewPoint == nil {
		return 0, false, false
	}
	spread = *steelTemp - *dewPoint
	return spread, spread >= DewPointConformanceThreshold, true
}

// Verdicts for a DFT summary row. Unknown when either the batch average or
// the member's required DFT is absent.
const (
	VerdictPass    = "PASS"
	VerdictFail    = "FAIL"
	VerdictUnknown = "—"
)

func dftVerdict(average *float64, required *float64) string {
	if average == nil || required == nil {
		return VerdictUnknown
	}
	if *average >= *required {
		return VerdictPass
	}
	return VerdictFail
}
