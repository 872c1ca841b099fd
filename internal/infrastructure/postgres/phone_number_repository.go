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

var _ repository.PhoneNumberRepository = (*PhoneNumberRepo)(nil)

// PhoneNumberRepo implementación de PhoneNumberRepository (usable con pool o tx).
type PhoneNumberRepo struct {
	q Querier
}

// NewPhoneNumberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPhoneNumberRepository(q Querier) *PhoneNumberRepo {
	return &PhoneNumberRepo{q: q}
}

const phoneNumberColumns = `id, number, tenant_id, capabilities, monthly_cost,
	deleted, created_at, updated_at`

// Create persiste un nuevo número.
func (r *PhoneNumberRepo) Create(ctx context.Context, number *entity.PhoneNumber) error {
	query := `
		INSERT INTO phone_numbers (id, number, tenant_id, capabilities, monthly_cost,
			deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		number.ID, number.Number, number.TenantID, number.Capabilities, number.MonthlyCost,
		number.Deleted, number.CreatedAt, number.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert phone number: %w", err)
	}
	return nil
}

// GetByID obtiene un número no borrado por ID.
func (r *PhoneNumberRepo) GetByID(ctx context.Context, id string) (*entity.PhoneNumber, error) {
	query := `SELECT ` + phoneNumberColumns + ` FROM phone_numbers WHERE id = $1 AND deleted = FALSE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get phone number")
}

// GetByNumber obtiene un número no borrado por su valor E.164. Es la llave
// de enrutamiento del webhook entrante.
func (r *PhoneNumberRepo) GetByNumber(ctx context.Context, number string) (*entity.PhoneNumber, error) {
	query := `SELECT ` + phoneNumberColumns + ` FROM phone_numbers WHERE number = $1 AND deleted = FALSE`
	return r.scanOne(r.q.QueryRow(ctx, query, number), "get phone number by value")
}

// Update actualiza un número (asignación, liberación, capacidades).
func (r *PhoneNumberRepo) Update(ctx context.Context, number *entity.PhoneNumber) error {
	query := `
		UPDATE phone_numbers SET tenant_id = $2, capabilities = $3, monthly_cost = $4, updated_at = $5
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(ctx, query,
		number.ID, number.TenantID, number.Capabilities, number.MonthlyCost, number.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update phone number: %w", err)
	}
	return nil
}

// ListAvailable lista números del pool sin tenant asignado.
func (r *PhoneNumberRepo) ListAvailable(ctx context.Context, limit, offset int) ([]*entity.PhoneNumber, error) {
	query := `SELECT ` + phoneNumberColumns + ` FROM phone_numbers
		WHERE tenant_id IS NULL AND deleted = FALSE
		ORDER BY number LIMIT $1 OFFSET $2`
	return r.scanMany(ctx, query, limit, offset)
}

// ListByTenant lista números asignados al tenant.
func (r *PhoneNumberRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.PhoneNumber, error) {
	query := `SELECT ` + phoneNumberColumns + ` FROM phone_numbers
		WHERE tenant_id = $1 AND deleted = FALSE
		ORDER BY number LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, tenantID, limit, offset)
}

func (r *PhoneNumberRepo) scanOne(row pgx.Row, op string) (*entity.PhoneNumber, error) {
	var n entity.PhoneNumber
	err := row.Scan(
		&n.ID, &n.Number, &n.TenantID, &n.Capabilities, &n.MonthlyCost,
		&n.Deleted, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &n, nil
}

func (r *PhoneNumberRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.PhoneNumber, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list phone numbers: %w", err)
	}
	defer rows.Close()
	var list []*entity.PhoneNumber
	for rows.Next() {
		var n entity.PhoneNumber
		if err := rows.Scan(
			&n.ID, &n.Number, &n.TenantID, &n.Capabilities, &n.MonthlyCost,
			&n.Deleted, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan phone number: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
