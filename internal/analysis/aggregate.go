package analysis

import "neuromotion/internal/models"

// Weights applied to the three sub-scores when computing overall risk.
const (
	surveyWeight = 0.35
	tapWeight    = 0.30
	spiralWeight = 0.35
)

var recommendations = map[models.RiskLevel]string{
	models.RiskLow:          "Your assessment suggests low risk. Continue monitoring your health with regular check-ups.",
	models.RiskLowModerate:  "Your assessment shows some indicators. Consider discussing these results with your healthcare provider.",
	models.RiskModerate:     "Your assessment indicates moderate concern. We recommend consulting a neurologist for a comprehensive evaluation.",
	models.RiskModerateHigh: "Your assessment shows significant indicators. Please schedule an appointment with a movement disorder specialist soon.",
	models.RiskHigh:         "Your assessment indicates high concern. We strongly recommend seeking immediate consultation with a neurologist or movement disorder specialist.",
}

// AggregateScores combines the three instrument sub-scores into the overall
// risk, its categorical level and the matching recommendation.
func AggregateScores(surveyScore, tapScore, spiralScore float64) (float64, models.RiskLevel, string) {
	overall := round2(surveyScore*surveyWeight + tapScore*tapWeight + spiralScore*spiralWeight)
	level := RiskLevelFor(overall)
	return overall, level, Recommendation(level)
}

// RiskLevelFor maps an overall risk score to its category band.
func RiskLevelFor(score float64) models.RiskLevel {
	switch {
	case score < 25:
		return models.RiskLow
	case score < 50:
		return models.RiskLowModerate
	case score < 70:
		return models.RiskModerate
	case score < 85:
		return models.RiskModerateHigh
	default:
		return models.RiskHigh
	}
}

// Recommendation returns the clinical guidance text for a risk level.
func Recommendation(level models.RiskLevel) string {
	if rec, ok := recommendations[level]; ok {
		return rec
	}
	return "Please consult a healthcare professional."
}
