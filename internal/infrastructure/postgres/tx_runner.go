package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

var _ usecase.ImportTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCustomerBatch inicia una transacción, ejecuta fn con un repositorio de
// clientes atado a la tx y hace Commit o Rollback. Lo usa la importación
// masiva: o entra todo el lote o no entra nada.
func (r *TxRunner) RunCustomerBatch(ctx context.Context, fn func(repo repository.CustomerRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCustomerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
