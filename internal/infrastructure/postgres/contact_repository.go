package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository (usable con pool o tx).
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

const contactColumns = `id, tenant_id, phone, email, first_name, last_name,
	sms_opt_in, email_opt_in, active, deleted, created_at, updated_at`

// Create persiste un nuevo contacto.
func (r *ContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, tenant_id, phone, email, first_name, last_name,
			sms_opt_in, email_opt_in, active, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		contact.ID, contact.TenantID, contact.Phone, contact.Email, contact.FirstName, contact.LastName,
		contact.SMSOptIn, contact.EmailOptIn, contact.Active, contact.Deleted, contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetByID obtiene un contacto no borrado por ID.
func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND deleted = FALSE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get contact")
}

// GetByPhoneAndTenant obtiene un contacto no borrado por teléfono dentro del tenant.
func (r *ContactRepo) GetByPhoneAndTenant(ctx context.Context, phone, tenantID string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
		WHERE phone = $1 AND tenant_id = $2 AND deleted = FALSE`
	return r.scanOne(r.q.QueryRow(ctx, query, phone, tenantID), "get contact by phone")
}

// GetFirstByPhone busca por teléfono sin filtrar tenant (primer match por
// fecha de alta). Solo lo usa el opt-out entrante.
func (r *ContactRepo) GetFirstByPhone(ctx context.Context, phone string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
		WHERE phone = $1 AND deleted = FALSE ORDER BY created_at LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, phone), "get first contact by phone")
}

// Update actualiza un contacto.
func (r *ContactRepo) Update(ctx context.Context, contact *entity.Contact) error {
	query := `
		UPDATE contacts SET email = $2, first_name = $3, last_name = $4,
			sms_opt_in = $5, email_opt_in = $6, active = $7, updated_at = $8
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(ctx, query,
		contact.ID, contact.Email, contact.FirstName, contact.LastName,
		contact.SMSOptIn, contact.EmailOptIn, contact.Active, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// ListByTenant lista contactos no borrados del tenant con paginación.
func (r *ContactRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
		WHERE tenant_id = $1 AND deleted = FALSE
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, tenantID, limit, offset)
}

// ListInactiveByTenant lista contactos activos del tenant sin actividad desde
// `before`, en orden estable para que la paginación del barrido no se salte filas.
func (r *ContactRepo) ListInactiveByTenant(ctx context.Context, tenantID string, before time.Time, limit, offset int) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
		WHERE tenant_id = $1 AND deleted = FALSE AND active = TRUE AND updated_at < $2
		ORDER BY id LIMIT $3 OFFSET $4`
	return r.scanMany(ctx, query, tenantID, before, limit, offset)
}

// SoftDelete marca el contacto como borrado.
func (r *ContactRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE contacts SET deleted = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) scanOne(row pgx.Row, op string) (*entity.Contact, error) {
	var c entity.Contact
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Phone, &c.Email, &c.FirstName, &c.LastName,
		&c.SMSOptIn, &c.EmailOptIn, &c.Active, &c.Deleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func (r *ContactRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.Contact, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.Phone, &c.Email, &c.FirstName, &c.LastName,
			&c.SMSOptIn, &c.EmailOptIn, &c.Active, &c.Deleted, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
