package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

var _ repository.SuppressionRepository = (*SuppressionRepo)(nil)

// SuppressionRepo implementación de SuppressionRepository (usable con pool o tx).
type SuppressionRepo struct {
	q Querier
}

// NewSuppressionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSuppressionRepository(q Querier) *SuppressionRepo {
	return &SuppressionRepo{q: q}
}

// Create persiste una supresión.
func (r *SuppressionRepo) Create(ctx context.Context, suppression *entity.Suppression) error {
	query := `
		INSERT INTO suppressions (id, tenant_id, identifier, type, reason, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		suppression.ID, suppression.TenantID, suppression.Identifier, suppression.Type,
		suppression.Reason, suppression.Source, suppression.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert suppression: %w", err)
	}
	return nil
}

// GetByID obtiene una supresión por ID.
func (r *SuppressionRepo) GetByID(ctx context.Context, id string) (*entity.Suppression, error) {
	query := `
		SELECT id, tenant_id, identifier, type, reason, source, created_at
		FROM suppressions WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get suppression")
}

// GetActiveByTenantAndIdentifier devuelve la supresión vigente del par
// (tenant, identificador), o (nil, nil) si no hay.
func (r *SuppressionRepo) GetActiveByTenantAndIdentifier(ctx context.Context, tenantID, identifier string) (*entity.Suppression, error) {
	query := `
		SELECT id, tenant_id, identifier, type, reason, source, created_at
		FROM suppressions WHERE tenant_id = $1 AND identifier = $2
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, tenantID, identifier), "get active suppression")
}

// ListByTenant lista supresiones del tenant con paginación.
func (r *SuppressionRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Suppression, error) {
	query := `
		SELECT id, tenant_id, identifier, type, reason, source, created_at
		FROM suppressions WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppressions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Suppression
	for rows.Next() {
		var s entity.Suppression
		if err := rows.Scan(
			&s.ID, &s.TenantID, &s.Identifier, &s.Type, &s.Reason, &s.Source, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan suppression: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete levanta una supresión (borrado físico: la lista de supresión solo
// tiene valor mientras está vigente).
func (r *SuppressionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM suppressions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete suppression: %w", err)
	}
	return nil
}

func (r *SuppressionRepo) scanOne(row pgx.Row, op string) (*entity.Suppression, error) {
	var s entity.Suppression
	err := row.Scan(&s.ID, &s.TenantID, &s.Identifier, &s.Type, &s.Reason, &s.Source, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
