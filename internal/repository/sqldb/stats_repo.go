package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rfpflow/internal/domain"
	"rfpflow/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new SQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const statusCountsQuery = `SELECT
	COUNT(CASE WHEN status = 'approved' THEN 1 END) AS approved,
	COUNT(CASE WHEN status = 'declined' THEN 1 END) AS declined,
	COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending
FROM rfp_requests`

type statusCounts struct {
	Approved int `db:"approved"`
	Declined int `db:"declined"`
	Pending  int `db:"pending"`
}

func (r *statsRepo) GetDashboardStats(ctx context.Context, recentLimit int) (*domain.DashboardStats, error) {
	var counts statusCounts
	if err := r.db.GetContext(ctx, &counts, statusCountsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetDashboardStats counts: %w", err)
	}

	recent := []domain.RecentRun{}
	err := r.db.SelectContext(ctx, &recent, r.db.Rebind(
		`SELECT id, created_at, status, title FROM rfp_requests
		 ORDER BY created_at DESC, id DESC LIMIT ?`), recentLimit)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.GetDashboardStats recent: %w", err)
	}

	return &domain.DashboardStats{
		Approved:       counts.Approved,
		Declined:       counts.Declined,
		Pending:        counts.Pending,
		RecentActivity: recent,
	}, nil
}
