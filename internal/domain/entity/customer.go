package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente con saldo pendiente de pago.
// Status y RiskLevel son atributos derivados (ver collections.ComputeStatus /
// ComputeRisk): se recalculan al leer el registro para presentación y se
// persisten al enviar un recordatorio o registrar un pago.
type Customer struct {
	ID        string
	OwnerID   string // usuario propietario; todo registro es exclusivo de un owner
	Name      string
	Email     string
	Phone     string
	Company   string
	AmountDue decimal.Decimal
	DueDate   time.Time
	Status    string // pending | overdue | paid
	RiskLevel string // low | medium | high
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
