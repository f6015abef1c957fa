package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"neuromotion/internal/config"
	"neuromotion/internal/models"
)

type stubStore struct{}

func (stubStore) CreateSession(ctx context.Context, session *models.Session) error { return nil }
func (stubStore) SaveTapSample(ctx context.Context, sample *models.TapSample) error {
	return nil
}
func (stubStore) ListSessions(ctx context.Context, limit int) ([]models.Session, error) {
	return []models.Session{}, nil
}
func (stubStore) Statistics(ctx context.Context) (*models.StatisticsReport, error) {
	return &models.StatisticsReport{}, nil
}

func testSetup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Conf = &config.Config{
		Server: config.ServerConfig{
			Port:               "8000",
			CORSOrigins:        []string{"http://localhost:5173"},
			RateLimitPerMinute: 1000,
		},
	}
	questionnaire := &models.Questionnaire{Questions: []models.Question{{ID: "tremor", Weight: 1}}}
	return Setup(zap.NewNop(), stubStore{}, questionnaire)
}

func TestSetupServesBanner(t *testing.T) {
	r := testSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "NeuroMotion API") || !strings.Contains(body, "operational") {
		t.Errorf("body = %s", body)
	}
	if rec.Header().Get(headerRequestID) == "" {
		t.Errorf("response carries no request id")
	}
}

func TestSetupRoutesSessionsThroughStore(t *testing.T) {
	r := testSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"sessions"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestSetupAllowsConfiguredOrigin(t *testing.T) {
	r := testSetup(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sessions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow-origin = %q", got)
	}
}

func TestRequestIDHonorsInboundHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Body.String() != "abc-123" {
		t.Errorf("request_id = %s", rec.Body.String())
	}
	if rec.Header().Get(headerRequestID) != "abc-123" {
		t.Errorf("echoed header = %s", rec.Header().Get(headerRequestID))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Body.String() == "" {
		t.Errorf("no request id minted")
	}
}
