package models

import "fmt"

// RiskLevel is the categorical label derived from the overall risk score.
// The five values are ordered from least to most severe and are part of the
// wire contract shared by aggregation, history and statistics consumers.
type RiskLevel string

const (
	RiskLow          RiskLevel = "Low"
	RiskLowModerate  RiskLevel = "Low-Moderate"
	RiskModerate     RiskLevel = "Moderate"
	RiskModerateHigh RiskLevel = "Moderate-High"
	RiskHigh         RiskLevel = "High"
)

// RiskLevels lists the valid categories in ascending severity order.
var RiskLevels = []RiskLevel{RiskLow, RiskLowModerate, RiskModerate, RiskModerateHigh, RiskHigh}

// ParseRiskLevel validates a wire value against the fixed category set.
func ParseRiskLevel(s string) (RiskLevel, error) {
	for _, lvl := range RiskLevels {
		if string(lvl) == s {
			return lvl, nil
		}
	}
	return "", fmt.Errorf("unknown risk level %q", s)
}

// Rank returns the position of the level in ascending severity order,
// or -1 for values outside the category set.
func (r RiskLevel) Rank() int {
	for i, lvl := range RiskLevels {
		if r == lvl {
			return i
		}
	}
	return -1
}

// Valid reports whether the level is one of the five fixed categories.
func (r RiskLevel) Valid() bool { return r.Rank() >= 0 }
