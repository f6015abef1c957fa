package capture

import (
	"context"
	"time"

	"neuromotion/internal/models"
	"neuromotion/internal/scoring"
)

// fakeScorer satisfies all three capture scorer interfaces, recording the
// last payload and returning a canned result or a configured error.
type fakeScorer struct {
	err error

	surveyCalls int
	lastAnswers map[string]int

	tapCalls      int
	lastIntervals []int64

	spiralCalls int
	lastPNG     []byte
}

func (f *fakeScorer) SubmitSurvey(_ context.Context, answers map[string]int) (*scoring.SubScore, error) {
	f.surveyCalls++
	f.lastAnswers = answers
	if f.err != nil {
		return nil, f.err
	}
	return &scoring.SubScore{Kind: scoring.KindSurvey, Score: 41.25, Timestamp: time.Now()}, nil
}

func (f *fakeScorer) SubmitTaps(_ context.Context, intervals []int64) (*scoring.SubScore, error) {
	f.tapCalls++
	f.lastIntervals = intervals
	if f.err != nil {
		return nil, f.err
	}
	return &scoring.SubScore{Kind: scoring.KindTaps, Score: 32.04, Timestamp: time.Now()}, nil
}

func (f *fakeScorer) SubmitSpiral(_ context.Context, png []byte) (*scoring.SubScore, error) {
	f.spiralCalls++
	f.lastPNG = png
	if f.err != nil {
		return nil, f.err
	}
	return &scoring.SubScore{Kind: scoring.KindSpiral, Score: 55, Timestamp: time.Now()}, nil
}

// fakeClock hands out a controllable time for tap interval math.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func testQuestionnaire() *models.Questionnaire {
	ids := []string{"tremor", "rigidity", "bradykinesia", "balance", "walking"}
	questions := make([]models.Question, len(ids))
	for i, id := range ids {
		questions[i] = models.Question{ID: id, Title: id, Weight: 0.2}
	}
	return &models.Questionnaire{Questions: questions}
}
