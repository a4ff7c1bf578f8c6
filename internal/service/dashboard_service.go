package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/repository"
)

type DashboardService interface {
	GetOwnerStats(ctx context.Context, accountID uuid.UUID) (*model.OwnerStats, error)
}

type dashboardService struct {
	stats repository.StatsRepository
}

func NewDashboardService(stats repository.StatsRepository) DashboardService {
	return &dashboardService{stats: stats}
}

// GetOwnerStats counts the caller's owned subtree; other tenants' resources
// never appear in the numbers.
func (s *dashboardService) GetOwnerStats(ctx context.Context, accountID uuid.UUID) (*model.OwnerStats, error) {
	return s.stats.CountsForOwner(ctx, accountID)
}
