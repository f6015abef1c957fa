package capture

import (
	"context"
	"fmt"

	"neuromotion/internal/models"
	"neuromotion/internal/scoring"
)

// SurveyScorer is the scoring call the survey capture delegates to.
type SurveyScorer interface {
	SubmitSurvey(ctx context.Context, answers map[string]int) (*scoring.SubScore, error)
}

// Survey collects one severity answer per questionnaire item. Answers may
// be overwritten freely until the capture is submitted.
type Survey struct {
	questionnaire *models.Questionnaire
	scorer        SurveyScorer
	answers       map[string]int
	submitted     bool
}

func NewSurvey(questionnaire *models.Questionnaire, scorer SurveyScorer) *Survey {
	return &Survey{
		questionnaire: questionnaire,
		scorer:        scorer,
		answers:       make(map[string]int),
	}
}

// RecordAnswer stores the severity for a question, overwriting any prior
// answer for the same id.
func (s *Survey) RecordAnswer(questionID string, severity int) error {
	if s.submitted {
		return &ValidationError{Field: "survey", Reason: "already submitted"}
	}
	if !s.questionnaire.Has(questionID) {
		return &ValidationError{Field: "question", Reason: fmt.Sprintf("unknown id %q", questionID)}
	}
	if severity < 0 || severity > models.SeverityMax {
		return &ValidationError{
			Field:  "severity",
			Reason: fmt.Sprintf("%d outside 0-%d", severity, models.SeverityMax),
		}
	}
	s.answers[questionID] = severity
	return nil
}

// IsComplete reports whether every questionnaire item has an answer.
func (s *Survey) IsComplete() bool {
	for _, id := range s.questionnaire.IDs() {
		if _, ok := s.answers[id]; !ok {
			return false
		}
	}
	return true
}

// Answers returns a copy of the recorded answers.
func (s *Survey) Answers() map[string]int {
	out := make(map[string]int, len(s.answers))
	for id, v := range s.answers {
		out[id] = v
	}
	return out
}

// Submit sends the completed answer set for scoring. The answers are
// frozen once submission succeeds.
func (s *Survey) Submit(ctx context.Context) (*scoring.SubScore, error) {
	if !s.IsComplete() {
		missing := len(s.questionnaire.IDs()) - len(s.answers)
		return nil, &ValidationError{
			Field:  "survey",
			Reason: fmt.Sprintf("%d of %d questions unanswered", missing, len(s.questionnaire.IDs())),
		}
	}
	result, err := s.scorer.SubmitSurvey(ctx, s.Answers())
	if err != nil {
		return nil, err
	}
	s.submitted = true
	return result, nil
}
