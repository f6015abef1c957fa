package analysis

import "neuromotion/internal/models"

// defaultQuestionWeight applies to answers whose id is not in the
// questionnaire, keeping the wire contract permissive.
const defaultQuestionWeight = 0.10

// QuestionScore is the per-question breakdown returned in the survey details.
type QuestionScore struct {
	RawAnswer  int     `json:"raw_answer"`
	Normalized float64 `json:"normalized"`
	Weight     float64 `json:"weight"`
}

// ScoreSurvey computes the weighted survey sub-score. Each ordinal answer is
// normalized from the 0-4 scale to 0-100 and multiplied by the question's
// clinical weight; higher symptom severity yields higher risk.
func ScoreSurvey(answers map[string]int, weights map[string]float64) (float64, map[string]any) {
	total := 0.0
	details := make(map[string]any, len(answers)+1)

	for question, answer := range answers {
		weight, ok := weights[question]
		if !ok {
			weight = defaultQuestionWeight
		}
		normalized := float64(answer) / float64(models.SeverityMax) * 100
		total += normalized * weight
		details[question] = QuestionScore{
			RawAnswer:  answer,
			Normalized: round2(normalized),
			Weight:     weight,
		}
	}

	score := round2(total)
	details["interpretation"] = Interpretation(score)
	return score, details
}
