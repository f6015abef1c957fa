// Package scoring is the HTTP client for the scoring service. Every call
// is a single network exchange; the client performs no retries and caches
// nothing. Transient failures come back as *ServiceError for the capture
// layer to handle.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"neuromotion/internal/models"
)

// Kind identifies which instrument produced a capture.
type Kind string

const (
	KindSurvey Kind = "survey"
	KindTaps   Kind = "taps"
	KindSpiral Kind = "spiral"
)

// SubScore is the outcome of scoring one instrument capture.
type SubScore struct {
	Kind      Kind
	Score     float64
	Details   map[string]any
	Timestamp time.Time
}

// Error bodies are clipped to this many bytes.
const maxBodyBytes = 1 << 20

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type surveyRequest struct {
	Answers map[string]int `json:"answers"`
}

type tapsRequest struct {
	Intervals []int64 `json:"intervals"`
}

type aggregateRequest struct {
	SurveyScore float64 `json:"survey_score"`
	TapScore    float64 `json:"tap_score"`
	SpiralScore float64 `json:"spiral_score"`
}

type scoreResponse struct {
	Score     float64        `json:"score"`
	Details   map[string]any `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}

type sessionsResponse struct {
	Sessions []models.Session `json:"sessions"`
}

func (r *scoreResponse) subScore(kind Kind) *SubScore {
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &SubScore{Kind: kind, Score: r.Score, Details: r.Details, Timestamp: ts}
}

// SubmitSurvey scores a complete set of survey answers.
func (c *Client) SubmitSurvey(ctx context.Context, answers map[string]int) (*SubScore, error) {
	var resp scoreResponse
	if err := c.postJSON(ctx, "analyze/survey", surveyRequest{Answers: answers}, &resp); err != nil {
		return nil, err
	}
	return resp.subScore(KindSurvey), nil
}

// SubmitTaps scores a trimmed tap interval list.
func (c *Client) SubmitTaps(ctx context.Context, intervals []int64) (*SubScore, error) {
	var resp scoreResponse
	if err := c.postJSON(ctx, "analyze/taps", tapsRequest{Intervals: intervals}, &resp); err != nil {
		return nil, err
	}
	return resp.subScore(KindTaps), nil
}

// SubmitSpiral uploads a rasterized spiral drawing as a multipart file.
func (c *Client) SubmitSpiral(ctx context.Context, png []byte) (*SubScore, error) {
	const op = "analyze/spiral"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	// CreateFormFile would label the part application/octet-stream, which
	// the service rejects. Declare the real content type instead.
	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="spiral.png"`)
	partHeader.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(partHeader)
	if err != nil {
		return nil, fmt.Errorf("build %s form: %w", op, err)
	}
	if _, err := part.Write(png); err != nil {
		return nil, fmt.Errorf("build %s form: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build %s form: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/"+op, &body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp scoreResponse
	if err := c.do(req, op, &resp); err != nil {
		return nil, err
	}
	return resp.subScore(KindSpiral), nil
}

// Aggregate submits the three sub-scores and returns the finalized
// session. A risk level outside the known category set is a contract
// violation and fails rather than being passed through.
func (c *Client) Aggregate(ctx context.Context, surveyScore, tapScore, spiralScore float64) (*models.Session, error) {
	payload := aggregateRequest{
		SurveyScore: surveyScore,
		TapScore:    tapScore,
		SpiralScore: spiralScore,
	}
	var session models.Session
	if err := c.postJSON(ctx, "aggregate", payload, &session); err != nil {
		return nil, err
	}
	if !session.RiskLevel.Valid() {
		return nil, fmt.Errorf("aggregate response carries unknown risk level %q", session.RiskLevel)
	}
	return &session, nil
}

// ListSessions fetches up to limit sessions, most recent first. A
// non-positive limit leaves the count to the service default.
func (c *Client) ListSessions(ctx context.Context, limit int) ([]models.Session, error) {
	const op = "sessions"

	url := c.baseURL + "/api/v1/sessions"
	if limit > 0 {
		url = fmt.Sprintf("%s?limit=%d", url, limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}

	var resp sessionsResponse
	if err := c.do(req, op, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// Statistics fetches the cross-session summary.
func (c *Client) Statistics(ctx context.Context) (*models.StatisticsReport, error) {
	const op = "statistics"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/"+op, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}

	var report models.StatisticsReport
	if err := c.do(req, op, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) postJSON(ctx context.Context, op string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/"+op, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Scoring request failed",
			zap.String("op", op),
			zap.Error(err))
		return &ServiceError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &ServiceError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Scoring request rejected",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode))
		return &ServiceError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	c.log.Debug("Scoring request completed",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode))
	return nil
}
