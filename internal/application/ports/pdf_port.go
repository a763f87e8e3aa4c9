package ports

import (
	"context"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// StatementPDFGenerator puerto de salida para la representación PDF del
// estado de cartera (clientes con saldo pendiente).
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, ownerName string, customers []*entity.Customer) ([]byte, error)
}
