package models

import (
	"time"

	"github.com/lib/pq"
)

// TapSample is the granular record persisted for every tap analysis: the raw
// intervals alongside the derived statistics, kept for later review.
type TapSample struct {
	ID        uint          `gorm:"primaryKey"`
	Intervals pq.Int64Array `gorm:"type:bigint[]"`
	MeanMs    float64
	StdMs     float64
	CV        float64
	Score     float64
	CreatedAt time.Time
}
