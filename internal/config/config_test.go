package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitDefaults(t *testing.T) {
	// No config file in an empty root, so every value falls to a default.
	if err := Init(t.TempDir()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if Conf.Server.Port != "8000" {
		t.Errorf("server.port = %q, want 8000", Conf.Server.Port)
	}
	if Conf.Server.RateLimitPerMinute != 120 {
		t.Errorf("server.rate_limit_per_minute = %d, want 120", Conf.Server.RateLimitPerMinute)
	}
	if len(Conf.Server.CORSOrigins) != 1 || Conf.Server.CORSOrigins[0] != "http://localhost:5173" {
		t.Errorf("server.cors_origins = %v", Conf.Server.CORSOrigins)
	}
	if Conf.Database.DBName != "neuromotion" {
		t.Errorf("database.dbname = %q, want neuromotion", Conf.Database.DBName)
	}
	if Conf.Logging.MaxSize != 10 || Conf.Logging.MaxAge != 7 {
		t.Errorf("logging defaults = %+v", Conf.Logging)
	}
	if Conf.Scoring.BaseURL != "http://localhost:8000" {
		t.Errorf("scoring.base_url = %q", Conf.Scoring.BaseURL)
	}
	if Conf.Scoring.TimeoutSeconds != 15 {
		t.Errorf("scoring.timeout_seconds = %d, want 15", Conf.Scoring.TimeoutSeconds)
	}
	if Conf.Assessment.QuestionsPath != "config/questions.yaml" {
		t.Errorf("assessment.questions_path = %q", Conf.Assessment.QuestionsPath)
	}
}

func TestInitReadsConfigFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "config"), 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	content := `server:
  port: "9100"
database:
  host: pg.internal
scoring:
  base_url: http://scoring.internal:9100
`
	if err := os.WriteFile(filepath.Join(root, "config", "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if err := Init(root); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if Conf.Server.Port != "9100" {
		t.Errorf("server.port = %q, want 9100", Conf.Server.Port)
	}
	if Conf.Database.Host != "pg.internal" {
		t.Errorf("database.host = %q, want pg.internal", Conf.Database.Host)
	}
	if Conf.Scoring.BaseURL != "http://scoring.internal:9100" {
		t.Errorf("scoring.base_url = %q", Conf.Scoring.BaseURL)
	}
	// Values the file does not mention keep their defaults.
	if Conf.Database.Port != "5432" {
		t.Errorf("database.port = %q, want default 5432", Conf.Database.Port)
	}
}

func TestInitEnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "config"), 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "config", "config.yaml"),
		[]byte("server:\n  port: \"9100\"\n"), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("NEUROMOTION_SERVER_PORT", "9999")
	t.Setenv("NEUROMOTION_SCORING_TIMEOUT_SECONDS", "30")

	if err := Init(root); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if Conf.Server.Port != "9999" {
		t.Errorf("server.port = %q, want env override 9999", Conf.Server.Port)
	}
	if Conf.Scoring.TimeoutSeconds != 30 {
		t.Errorf("scoring.timeout_seconds = %d, want env override 30", Conf.Scoring.TimeoutSeconds)
	}
}

func TestInitRejectsMalformedFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "config"), 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "config", "config.yaml"),
		[]byte("server: [not: a: map"), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if err := Init(root); err == nil {
		t.Fatal("Init succeeded on a malformed config file")
	}
}
