package analysis

import (
	"strings"
	"testing"

	"neuromotion/internal/models"
)

func TestAggregateScoresWeighting(t *testing.T) {
	score, level, rec := AggregateScores(50, 50, 50)
	if score != 50 {
		t.Errorf("equal sub-scores aggregate = %v, want 50", score)
	}
	if level != models.RiskModerate {
		t.Errorf("level = %v, want %v", level, models.RiskModerate)
	}
	if rec == "" {
		t.Error("no recommendation returned")
	}

	// 0.35*100 + 0.30*0 + 0.35*0
	score, level, _ = AggregateScores(100, 0, 0)
	if score != 35 {
		t.Errorf("survey-only aggregate = %v, want 35", score)
	}
	if level != models.RiskLowModerate {
		t.Errorf("level = %v, want %v", level, models.RiskLowModerate)
	}
}

func TestRiskLevelBands(t *testing.T) {
	cases := []struct {
		score float64
		want  models.RiskLevel
	}{
		{0, models.RiskLow},
		{24.99, models.RiskLow},
		{25, models.RiskLowModerate},
		{49.99, models.RiskLowModerate},
		{50, models.RiskModerate},
		{69.99, models.RiskModerate},
		{70, models.RiskModerateHigh},
		{84.99, models.RiskModerateHigh},
		{85, models.RiskHigh},
		{100, models.RiskHigh},
	}
	for _, tc := range cases {
		if got := RiskLevelFor(tc.score); got != tc.want {
			t.Errorf("RiskLevelFor(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestRecommendationPerLevel(t *testing.T) {
	for _, level := range models.RiskLevels {
		rec := Recommendation(level)
		if rec == "" {
			t.Errorf("no recommendation for level %v", level)
		}
	}
	if rec := Recommendation(models.RiskLevel("Unheard Of")); !strings.Contains(rec, "healthcare professional") {
		t.Errorf("unknown level fallback = %q, want generic referral", rec)
	}
}
