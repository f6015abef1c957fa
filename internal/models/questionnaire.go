package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeverityMax is the top of the ordinal answer scale (0..SeverityMax).
const SeverityMax = 4

// Question is one symptom item of the survey instrument.
type Question struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Weight      float64  `yaml:"weight"`
	Options     []Option `yaml:"options"`
}

// Option is one selectable severity for a question.
type Option struct {
	Value int    `yaml:"value"`
	Label string `yaml:"label"`
}

// Questionnaire holds the fixed question set shared by the survey capture
// (ids, labels) and the scoring service (weights). Both sides load the same
// file, which keeps the question ids aligned across the wire contract.
type Questionnaire struct {
	Questions []Question `yaml:"questions"`
}

// LoadQuestionnaire reads and parses a questions.yaml file.
func LoadQuestionnaire(path string) (*Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questionnaire file: %w", err)
	}

	var q Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questionnaire YAML: %w", err)
	}
	if len(q.Questions) == 0 {
		return nil, fmt.Errorf("questionnaire %s contains no questions", path)
	}

	seen := make(map[string]bool, len(q.Questions))
	for _, question := range q.Questions {
		if question.ID == "" {
			return nil, fmt.Errorf("questionnaire %s contains a question without an id", path)
		}
		if seen[question.ID] {
			return nil, fmt.Errorf("questionnaire %s contains duplicate question id %q", path, question.ID)
		}
		seen[question.ID] = true
	}
	return &q, nil
}

// IDs returns the question ids in file order.
func (q *Questionnaire) IDs() []string {
	ids := make([]string, len(q.Questions))
	for i, question := range q.Questions {
		ids[i] = question.ID
	}
	return ids
}

// Has reports whether id belongs to the questionnaire.
func (q *Questionnaire) Has(id string) bool {
	for _, question := range q.Questions {
		if question.ID == id {
			return true
		}
	}
	return false
}

// Weights returns the per-question scoring weights keyed by id.
func (q *Questionnaire) Weights() map[string]float64 {
	weights := make(map[string]float64, len(q.Questions))
	for _, question := range q.Questions {
		weights[question.ID] = question.Weight
	}
	return weights
}
