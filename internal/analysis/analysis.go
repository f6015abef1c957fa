// Package analysis implements the scoring algorithms behind the analyze and
// aggregate endpoints: survey weighting, tap-rhythm statistics, spiral raster
// metrics and the overall risk aggregation.
package analysis

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clampScore bounds a component score to the 0-100 scale.
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Interpretation maps an individual instrument score to its concern label.
func Interpretation(score float64) string {
	switch {
	case score < 30:
		return "Low concern"
	case score < 60:
		return "Moderate concern"
	default:
		return "High concern"
	}
}
