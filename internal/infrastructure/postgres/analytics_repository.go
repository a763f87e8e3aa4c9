package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetCollectionStats calcula las métricas de cartera del owner en dos
// consultas agregadas (clientes y recordatorios).
func (r *AnalyticsRepo) GetCollectionStats(ownerID string) (*repository.CollectionStats, error) {
	var stats repository.CollectionStats

	// Estado y riesgo se derivan de due_date en la consulta, igual que al
	// leer un registro: las columnas persistidas quedan atrás entre
	// mutaciones. Umbral alto: más de 30 días de mora o monto sobre 50000.
	customerQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status <> 'paid' AND due_date >= now()),
			COUNT(*) FILTER (WHERE status <> 'paid' AND due_date < now()),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COUNT(*) FILTER (WHERE status <> 'paid'
				AND (due_date <= now() - interval '31 days' OR amount_due > 50000)),
			COALESCE(SUM(amount_due) FILTER (WHERE status <> 'paid'), 0)
		FROM customers WHERE owner_id = $1`
	err := r.q.QueryRow(context.Background(), customerQuery, ownerID).Scan(
		&stats.TotalCustomers, &stats.PendingCount, &stats.OverdueCount,
		&stats.PaidCount, &stats.HighRiskCount, &stats.TotalOutstanding,
	)
	if err != nil {
		return nil, fmt.Errorf("customer stats: %w", err)
	}

	reminderQuery := `
		SELECT COUNT(*) FROM reminders
		WHERE owner_id = $1 AND status IN ('sent', 'delivered', 'responded')`
	if err := r.q.QueryRow(context.Background(), reminderQuery, ownerID).Scan(&stats.RemindersSent); err != nil {
		return nil, fmt.Errorf("reminder stats: %w", err)
	}

	return &stats, nil
}
