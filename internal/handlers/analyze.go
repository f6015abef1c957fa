package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"neuromotion/internal/analysis"
	"neuromotion/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionStore is the slice of the persistence layer the handlers need.
type SessionStore interface {
	CreateSession(ctx context.Context, session *models.Session) error
	SaveTapSample(ctx context.Context, sample *models.TapSample) error
	ListSessions(ctx context.Context, limit int) ([]models.Session, error)
	Statistics(ctx context.Context) (*models.StatisticsReport, error)
}

type AnalyzeHandler struct {
	log           *zap.Logger
	store         SessionStore
	questionnaire *models.Questionnaire
}

func NewAnalyzeHandler(log *zap.Logger, store SessionStore, questionnaire *models.Questionnaire) *AnalyzeHandler {
	return &AnalyzeHandler{log: log, store: store, questionnaire: questionnaire}
}

type surveyRequest struct {
	Answers map[string]int `json:"answers" binding:"required"`
}

type tapsRequest struct {
	Intervals []int64 `json:"intervals" binding:"required"`
}

type aggregateRequest struct {
	SurveyScore *float64 `json:"survey_score"`
	TapScore    *float64 `json:"tap_score"`
	SpiralScore *float64 `json:"spiral_score"`
}

type scoreResponse struct {
	Score     float64   `json:"score"`
	Details   any       `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *AnalyzeHandler) AnalyzeSurvey(c *gin.Context) {
	var req surveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind survey request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid survey payload"})
		return
	}

	score, details := analysis.ScoreSurvey(req.Answers, h.questionnaire.Weights())
	c.JSON(http.StatusOK, scoreResponse{Score: score, Details: details, Timestamp: time.Now().UTC()})
}

func (h *AnalyzeHandler) AnalyzeTaps(c *gin.Context) {
	var req tapsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind taps request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid taps payload"})
		return
	}

	score, stats, err := analysis.ScoreTaps(req.Intervals)
	if err != nil {
		if errors.Is(err, analysis.ErrInsufficientTaps) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Minimum 3 taps required"})
			return
		}
		h.log.Error("Failed to analyze taps", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze taps"})
		return
	}

	// The raw sample is kept for later review. Losing it does not fail
	// the analysis.
	sample := &models.TapSample{
		Intervals: req.Intervals,
		MeanMs:    stats.MeanIntervalMs,
		StdMs:     stats.StdDeviation,
		CV:        stats.CoefficientVariation,
		Score:     score,
	}
	if err := h.store.SaveTapSample(c, sample); err != nil {
		h.log.Error("Failed to save tap sample", zap.Error(err))
	}

	c.JSON(http.StatusOK, scoreResponse{Score: score, Details: stats, Timestamp: time.Now().UTC()})
}

func (h *AnalyzeHandler) AnalyzeSpiral(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spiral image file is required"})
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image"})
		return
	}

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("Failed to read spiral upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	score, metrics, err := analysis.ScoreSpiral(imageBytes)
	if err != nil {
		if errors.Is(err, analysis.ErrNoDrawing) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No drawing detected"})
			return
		}
		h.log.Error("Failed to analyze spiral", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is not a decodable image"})
		return
	}

	c.JSON(http.StatusOK, scoreResponse{Score: score, Details: metrics, Timestamp: time.Now().UTC()})
}

func (h *AnalyzeHandler) Aggregate(c *gin.Context) {
	var req aggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind aggregate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid aggregate payload"})
		return
	}
	if !validScore(req.SurveyScore) || !validScore(req.TapScore) || !validScore(req.SpiralScore) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "survey_score, tap_score and spiral_score must be between 0 and 100"})
		return
	}

	overall, level, recommendation := analysis.AggregateScores(*req.SurveyScore, *req.TapScore, *req.SpiralScore)
	session := &models.Session{
		OverallRisk:    overall,
		RiskLevel:      level,
		SurveyScore:    *req.SurveyScore,
		TapScore:       *req.TapScore,
		SpiralScore:    *req.SpiralScore,
		Recommendation: recommendation,
	}
	if err := h.store.CreateSession(c, session); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	h.log.Info("Session aggregated",
		zap.Uint("session_id", session.ID),
		zap.Float64("overall_risk", session.OverallRisk),
		zap.String("risk_level", string(session.RiskLevel)))
	c.JSON(http.StatusOK, session)
}

func validScore(v *float64) bool {
	return v != nil && *v >= 0 && *v <= 100
}
