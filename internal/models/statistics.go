package models

// Statistics summarizes all stored sessions. The store recomputes it on
// every query; nothing here is cached.
type Statistics struct {
	TotalSessions int64   `json:"total_sessions"`
	AvgRisk       float64 `json:"avg_risk"`
	MinRisk       float64 `json:"min_risk"`
	MaxRisk       float64 `json:"max_risk"`
}

// RiskLevelCount is one bucket of the per-category session distribution.
type RiskLevelCount struct {
	RiskLevel RiskLevel `json:"risk_level"`
	Count     int64     `json:"count"`
}

// StatisticsReport bundles the summary with the risk-level distribution,
// matching the statistics endpoint response shape.
type StatisticsReport struct {
	Statistics       Statistics       `json:"statistics"`
	RiskDistribution []RiskLevelCount `json:"risk_distribution"`
}
