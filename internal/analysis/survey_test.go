package analysis

import "testing"

func TestScoreSurveyWeightedSum(t *testing.T) {
	weights := map[string]float64{
		"tremor":       0.25,
		"rigidity":     0.20,
		"bradykinesia": 0.25,
		"balance":      0.15,
		"walking":      0.15,
	}
	answers := map[string]int{
		"tremor":       2,
		"rigidity":     1,
		"bradykinesia": 3,
		"balance":      0,
		"walking":      4,
	}

	score, details := ScoreSurvey(answers, weights)
	if score != 51.25 {
		t.Fatalf("score = %v, want 51.25", score)
	}
	if details["interpretation"] != "Moderate concern" {
		t.Errorf("interpretation = %v, want Moderate concern", details["interpretation"])
	}

	qs, ok := details["tremor"].(QuestionScore)
	if !ok {
		t.Fatalf("tremor detail has type %T, want QuestionScore", details["tremor"])
	}
	if qs.RawAnswer != 2 || qs.Normalized != 50 || qs.Weight != 0.25 {
		t.Errorf("tremor detail = %+v, want raw=2 normalized=50 weight=0.25", qs)
	}
}

func TestScoreSurveyUnknownQuestionGetsDefaultWeight(t *testing.T) {
	score, details := ScoreSurvey(map[string]int{"mystery": 4}, map[string]float64{})
	if score != 10 {
		t.Fatalf("score = %v, want 10 (100 normalized at default weight 0.10)", score)
	}
	qs := details["mystery"].(QuestionScore)
	if qs.Weight != defaultQuestionWeight {
		t.Errorf("weight = %v, want %v", qs.Weight, defaultQuestionWeight)
	}
}

func TestScoreSurveyEmptyAnswers(t *testing.T) {
	score, details := ScoreSurvey(map[string]int{}, map[string]float64{"tremor": 0.25})
	if score != 0 {
		t.Fatalf("score = %v, want 0", score)
	}
	if details["interpretation"] != "Low concern" {
		t.Errorf("interpretation = %v, want Low concern", details["interpretation"])
	}
}

func TestInterpretationBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, "Low concern"},
		{29.99, "Low concern"},
		{30, "Moderate concern"},
		{59.99, "Moderate concern"},
		{60, "High concern"},
		{100, "High concern"},
	}
	for _, tc := range cases {
		if got := Interpretation(tc.score); got != tc.want {
			t.Errorf("Interpretation(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
