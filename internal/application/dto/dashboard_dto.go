package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse métricas agregadas de cobranza del owner.
type DashboardStatsResponse struct {
	TotalCustomers   int             `json:"total_customers"`
	PendingCount     int             `json:"pending_count"`
	OverdueCount     int             `json:"overdue_count"`
	PaidCount        int             `json:"paid_count"`
	HighRiskCount    int             `json:"high_risk_count"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	RemindersSent    int             `json:"reminders_sent"`
}
