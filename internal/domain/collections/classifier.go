// Package collections contiene la lógica pura de cobranza: clasificación de
// estado de pago y nivel de riesgo de un cliente a partir de su fecha de
// vencimiento, monto adeudado y estado actual.
package collections

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de un cliente.
const (
	StatusPending = "pending"
	StatusOverdue = "overdue"
	StatusPaid    = "paid"
)

// Niveles de riesgo.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Umbrales de riesgo. Monto en la moneda de la cuenta.
var (
	highAmountThreshold   = decimal.NewFromInt(50000)
	mediumAmountThreshold = decimal.NewFromInt(15000)
)

const (
	highDaysThreshold   = 30
	mediumDaysThreshold = 7
)

// ComputeStatus deriva el estado de pago. "paid" es terminal: no se reevalúa.
// Un cliente está "overdue" solo si la fecha de vencimiento es estrictamente
// anterior a now; vencer exactamente en este instante todavía es "pending".
func ComputeStatus(dueDate time.Time, currentStatus string, now time.Time) string {
	if currentStatus == StatusPaid {
		return StatusPaid
	}
	if dueDate.Before(now) {
		return StatusOverdue
	}
	return StatusPending
}

// ComputeRisk deriva el nivel de riesgo a partir de los días de mora y el monto.
// "paid" siempre es riesgo bajo, sin importar fecha ni monto.
func ComputeRisk(dueDate time.Time, amountDue decimal.Decimal, currentStatus string, now time.Time) string {
	if currentStatus == StatusPaid {
		return RiskLow
	}
	days := DaysOverdue(dueDate, now)
	switch {
	case days > highDaysThreshold || amountDue.GreaterThan(highAmountThreshold):
		return RiskHigh
	case days > mediumDaysThreshold || amountDue.GreaterThan(mediumAmountThreshold):
		return RiskMedium
	default:
		return RiskLow
	}
}

// DaysOverdue devuelve los días de mora truncados (no redondeados): 25 horas
// de mora son 1 día. Negativo si la fecha de vencimiento está en el futuro.
func DaysOverdue(dueDate, now time.Time) int {
	return int(now.Sub(dueDate).Hours() / 24)
}
