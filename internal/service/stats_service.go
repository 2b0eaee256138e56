package service

import (
	"context"

	"rfpflow/internal/domain"
	"rfpflow/internal/port"
)

// RecentActivityLimit is the number of runs listed on the dashboard.
const RecentActivityLimit = 5

// StatsService provides aggregate run statistics.
type StatsService interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.statsRepo.GetDashboardStats(ctx, RecentActivityLimit)
}
