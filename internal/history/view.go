// Package history is the read side of the assessment pipeline: a
// view-model that loads completed sessions plus summary statistics and
// derives the display projections. It never touches wizard state.
package history

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"neuromotion/internal/models"
)

// SessionSource supplies the two independent reads the view combines.
// The scoring client satisfies it.
type SessionSource interface {
	ListSessions(ctx context.Context, limit int) ([]models.Session, error)
	Statistics(ctx context.Context) (*models.StatisticsReport, error)
}

// DefaultLimit matches the service's session page size.
const DefaultLimit = 50

const (
	trendLimit      = 30
	comparisonLimit = 10
)

// slopeThreshold separates a real trajectory from noise, in risk points
// per second of elapsed session time.
const slopeThreshold = 0.01

// View holds the loaded history state. Loads may overlap; a generation
// counter makes the latest call win and discards stale results on
// arrival.
type View struct {
	source SessionSource
	log    *zap.Logger
	limit  int

	mu         sync.Mutex
	generation int
	sessions   []models.Session
	report     *models.StatisticsReport
	err        error
	loaded     bool
}

// NewView builds a view over source. A non-positive limit falls back to
// DefaultLimit.
func NewView(source SessionSource, limit int, log *zap.Logger) *View {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &View{source: source, limit: limit, log: log}
}

// Load fetches the session list and the statistics summary concurrently
// and exposes them together. A load that was superseded by a newer one
// leaves the view untouched.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.mu.Unlock()

	var (
		sessions []models.Session
		report   *models.StatisticsReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = v.source.ListSessions(gctx, v.limit)
		return err
	})
	g.Go(func() error {
		var err error
		report, err = v.source.Statistics(gctx)
		return err
	})
	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		v.log.Debug("Discarding superseded history load")
		return err
	}
	if err != nil {
		v.log.Warn("History load failed", zap.Error(err))
		v.err = err
		return err
	}
	v.sessions = sessions
	v.report = report
	v.err = nil
	v.loaded = true
	return nil
}

// Refresh re-issues Load with the same limit.
func (v *View) Refresh(ctx context.Context) error {
	return v.Load(ctx)
}

// Loaded reports whether at least one load has completed successfully.
func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Err is the failure of the most recent applied load, nil after a
// success.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Sessions returns the loaded sessions, most recent first.
func (v *View) Sessions() []models.Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Session, len(v.sessions))
	copy(out, v.sessions)
	return out
}

// Report returns the loaded statistics summary, nil before the first
// successful load.
func (v *View) Report() *models.StatisticsReport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.report
}

// Trend returns up to the 30 most recent sessions in chronological order
// for charting. It is recomputed from the loaded list on every call.
func (v *View) Trend() []models.Session {
	return v.tail(trendLimit)
}

// Comparison returns up to the 10 most recent sessions in chronological
// order.
func (v *View) Comparison() []models.Session {
	return v.tail(comparisonLimit)
}

// tail takes the n most recent sessions and reverses them oldest-first.
func (v *View) tail(n int) []models.Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.sessions) < n {
		n = len(v.sessions)
	}
	out := make([]models.Session, n)
	for i := 0; i < n; i++ {
		out[i] = v.sessions[n-1-i]
	}
	return out
}

// TrendDirection classifies the risk trajectory over the trend series by
// simple linear regression against elapsed time.
func (v *View) TrendDirection() string {
	trend := v.Trend()
	if len(trend) < 2 {
		return "stable"
	}

	base := trend[0].CreatedAt
	allEqual := true
	var sumX, sumY, sumXY, sumXX float64
	for _, s := range trend {
		if s.OverallRisk != trend[0].OverallRisk {
			allEqual = false
		}
		x := s.CreatedAt.Sub(base).Seconds()
		y := s.OverallRisk
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	if allEqual {
		return "stable"
	}

	n := float64(len(trend))
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return "stable"
	}
	slope := (n*sumXY - sumX*sumY) / denom
	switch {
	case slope > slopeThreshold:
		return "increasing"
	case slope < -slopeThreshold:
		return "decreasing"
	default:
		return "stable"
	}
}
