package port

import (
	"context"

	"rfpflow/internal/domain"
)

// StatsRepository provides aggregate run statistics.
type StatsRepository interface {
	GetDashboardStats(ctx context.Context, recentLimit int) (*domain.DashboardStats, error)
}
