package repository

import "github.com/shopspring/decimal"

// CollectionStats métricas agregadas de cobranza de un owner.
type CollectionStats struct {
	TotalCustomers   int
	PendingCount     int
	OverdueCount     int
	PaidCount        int
	HighRiskCount    int
	TotalOutstanding decimal.Decimal // suma de amount_due de clientes no pagados
	RemindersSent    int
}

// AnalyticsRepository consultas agregadas para el dashboard.
type AnalyticsRepository interface {
	GetCollectionStats(ownerID string) (*CollectionStats, error)
}
