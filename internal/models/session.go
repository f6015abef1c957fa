package models

import "time"

// Session is one completed, aggregated assessment. Rows are immutable once
// written; the JSON field names are the wire contract served to clients.
type Session struct {
	ID             uint      `gorm:"primaryKey" json:"session_id"`
	OverallRisk    float64   `json:"overall_risk"`
	RiskLevel      RiskLevel `gorm:"type:text" json:"risk_level"`
	SurveyScore    float64   `json:"survey_score"`
	TapScore       float64   `json:"tap_score"`
	SpiralScore    float64   `json:"spiral_score"`
	Recommendation string    `json:"recommendation"`
	CreatedAt      time.Time `json:"timestamp"`
}
