package analysis

import (
	"errors"
	"math"
)

// MinTapIntervals is the smallest interval list the scorer accepts.
const MinTapIntervals = 3

// ErrInsufficientTaps is returned when fewer than MinTapIntervals intervals
// are supplied.
var ErrInsufficientTaps = errors.New("minimum 3 tap intervals required")

// TapStats carries the derived rhythm statistics returned in the details.
type TapStats struct {
	MeanIntervalMs       float64 `json:"mean_interval_ms"`
	StdDeviation         float64 `json:"std_deviation"`
	CoefficientVariation float64 `json:"coefficient_variation"`
	TapCount             int     `json:"tap_count"`
	SpeedComponent       float64 `json:"speed_component"`
	ConsistencyComponent float64 `json:"consistency_component"`
	Interpretation       string  `json:"interpretation"`
}

// ScoreTaps computes the tapping sub-score from inter-tap intervals in
// milliseconds. Slow tapping raises the speed component (normal means sit
// around 200-300ms) and irregular rhythm raises the consistency component
// (coefficient of variation above ~20% is abnormal); the final score mixes
// them 60/40.
func ScoreTaps(intervals []int64) (float64, *TapStats, error) {
	if len(intervals) < MinTapIntervals {
		return 0, nil, ErrInsufficientTaps
	}

	var sum float64
	for _, iv := range intervals {
		sum += float64(iv)
	}
	mean := sum / float64(len(intervals))

	var variance float64
	for _, iv := range intervals {
		variance += math.Pow(float64(iv)-mean, 2)
	}
	variance /= float64(len(intervals))
	std := math.Sqrt(variance)

	cv := 100.0
	if mean > 0 {
		cv = (std / mean) * 100
	}

	speed := clampScore((mean - 200) / 300 * 100)
	consistency := clampScore(cv / 50 * 100)
	score := round2(speed*0.6 + consistency*0.4)

	stats := &TapStats{
		MeanIntervalMs:       round2(mean),
		StdDeviation:         round2(std),
		CoefficientVariation: round2(cv),
		TapCount:             len(intervals),
		SpeedComponent:       round2(speed),
		ConsistencyComponent: round2(consistency),
		Interpretation:       Interpretation(score),
	}
	return score, stats, nil
}
