package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest alta manual de cliente. DueDate en formato YYYY-MM-DD.
type CreateCustomerRequest struct {
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Company   string          `json:"company"`
	AmountDue decimal.Decimal `json:"amount_due"`
	DueDate   string          `json:"due_date"`
	Notes     string          `json:"notes"`
}

// UpdateCustomerRequest edición de cliente. Campos vacíos no se modifican,
// salvo AmountDue/DueDate que siempre viajan completos desde el formulario.
type UpdateCustomerRequest struct {
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Company   string          `json:"company"`
	AmountDue decimal.Decimal `json:"amount_due"`
	DueDate   string          `json:"due_date"`
	Notes     string          `json:"notes"`
}

// CustomerResponse cliente con sus atributos derivados ya recalculados.
type CustomerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone,omitempty"`
	Company     string          `json:"company,omitempty"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	DueDate     string          `json:"due_date"`
	Status      string          `json:"status"`
	RiskLevel   string          `json:"risk_level"`
	DaysOverdue int             `json:"days_overdue"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ImportRowError error de validación de una fila del archivo importado.
// Row es 1-based sobre las filas de datos (sin contar el encabezado).
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult resumen de una importación masiva: cuántos clientes se
// insertaron y qué filas fallaron la validación.
type ImportResult struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
