package usecase

import (
	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// DashboardUseCase métricas agregadas de cobranza para el dashboard.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Stats devuelve los agregados del owner.
func (uc *DashboardUseCase) Stats(ownerID string) (*dto.DashboardStatsResponse, error) {
	stats, err := uc.repo.GetCollectionStats(ownerID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		TotalCustomers:   stats.TotalCustomers,
		PendingCount:     stats.PendingCount,
		OverdueCount:     stats.OverdueCount,
		PaidCount:        stats.PaidCount,
		HighRiskCount:    stats.HighRiskCount,
		TotalOutstanding: stats.TotalOutstanding,
		RemindersSent:    stats.RemindersSent,
	}, nil
}
