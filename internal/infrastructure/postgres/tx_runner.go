package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Mercadeo-api/internal/application/webhook"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

var _ webhook.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Lo usa el opt-out: supresión y limpieza de flags del
// contacto se confirman juntas.
func (r *TxRunner) Run(ctx context.Context, fn func(
	contacts repository.ContactRepository,
	suppressions repository.SuppressionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	contacts := NewContactRepository(tx)
	suppressions := NewSuppressionRepository(tx)

	if err := fn(contacts, suppressions); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
