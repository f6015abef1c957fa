package repository

import (
	"context"
	"sort"

	"neuromotion/internal/models"

	"gorm.io/gorm"
)

// DefaultSessionLimit caps history queries that do not ask for a limit.
const DefaultSessionLimit = 50

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *Store) SaveTapSample(ctx context.Context, sample *models.TapSample) error {
	return s.db.WithContext(ctx).Create(sample).Error
}

func (s *Store) ListSessions(ctx context.Context, limit int) ([]models.Session, error) {
	if limit <= 0 {
		limit = DefaultSessionLimit
	}
	sessions := []models.Session{}
	err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&sessions).Error
	return sessions, err
}

func (s *Store) Statistics(ctx context.Context) (*models.StatisticsReport, error) {
	var stats models.Statistics
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_sessions,
			COALESCE(ROUND(AVG(overall_risk)::numeric, 2), 0)::float AS avg_risk,
			COALESCE(MIN(overall_risk), 0) AS min_risk,
			COALESCE(MAX(overall_risk), 0) AS max_risk
		FROM sessions;
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	counts := []models.RiskLevelCount{}
	err = s.db.WithContext(ctx).Raw(`
		SELECT risk_level, COUNT(*) AS count
		FROM sessions
		GROUP BY risk_level;
	`).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	sort.Slice(counts, func(i, j int) bool {
		return severityRank(counts[i].RiskLevel) < severityRank(counts[j].RiskLevel)
	})

	return &models.StatisticsReport{Statistics: stats, RiskDistribution: counts}, nil
}

// severityRank sends anything outside the category set to the end.
func severityRank(lvl models.RiskLevel) int {
	if r := lvl.Rank(); r >= 0 {
		return r
	}
	return len(models.RiskLevels)
}
