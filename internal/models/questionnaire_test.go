package models

import (
	"os"
	"path/filepath"
	"testing"
)

const testQuestionsYAML = `questions:
  - id: tremor
    title: "Tremor at rest"
    weight: 0.25
    options:
      - value: 0
        label: "Never"
      - value: 4
        label: "Always"
  - id: rigidity
    title: "Muscle stiffness"
    weight: 0.20
    options:
      - value: 0
        label: "Never"
`

func writeQuestionnaire(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing questionnaire fixture: %v", err)
	}
	return path
}

func TestLoadQuestionnaire(t *testing.T) {
	path := writeQuestionnaire(t, testQuestionsYAML)

	q, err := LoadQuestionnaire(path)
	if err != nil {
		t.Fatalf("LoadQuestionnaire failed: %v", err)
	}
	if len(q.Questions) != 2 {
		t.Fatalf("loaded %d questions, want 2", len(q.Questions))
	}

	ids := q.IDs()
	if ids[0] != "tremor" || ids[1] != "rigidity" {
		t.Errorf("IDs() = %v, want [tremor rigidity]", ids)
	}
	if !q.Has("tremor") || q.Has("walking") {
		t.Error("Has() does not reflect the loaded question set")
	}

	weights := q.Weights()
	if weights["tremor"] != 0.25 || weights["rigidity"] != 0.20 {
		t.Errorf("Weights() = %v, want tremor=0.25 rigidity=0.20", weights)
	}
}

func TestLoadQuestionnaireRejectsBadFiles(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty", "questions: []\n"},
		{"missing id", "questions:\n  - title: \"No id\"\n    weight: 0.1\n"},
		{"duplicate id", "questions:\n  - id: tremor\n    weight: 0.1\n  - id: tremor\n    weight: 0.2\n"},
		{"not yaml", "{{{"},
	}
	for _, tc := range cases {
		path := writeQuestionnaire(t, tc.content)
		if _, err := LoadQuestionnaire(path); err == nil {
			t.Errorf("%s: LoadQuestionnaire succeeded, want error", tc.name)
		}
	}

	if _, err := LoadQuestionnaire(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadQuestionnaire on a missing file succeeded, want error")
	}
}
