package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo implementación de MessageRepository (usable con pool o tx).
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

const messageColumns = `id, tenant_id, campaign_id, contact_id, phone, body,
	external_id, status, cost, error_message, delivered_at, failed_at, created_at, updated_at`

// Create persiste un nuevo mensaje.
func (r *MessageRepo) Create(ctx context.Context, message *entity.Message) error {
	query := `
		INSERT INTO messages (id, tenant_id, campaign_id, contact_id, phone, body,
			external_id, status, cost, error_message, delivered_at, failed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		message.ID, message.TenantID, message.CampaignID, message.ContactID, message.Phone, message.Body,
		message.ExternalID, message.Status, message.Cost, message.ErrorMessage,
		message.DeliveredAt, message.FailedAt, message.CreatedAt, message.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// GetByID obtiene un mensaje por ID.
func (r *MessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get message")
}

// GetByExternalID busca el mensaje por el id del proveedor. Los callbacks de
// estado llegan con ese id, no con el interno.
func (r *MessageRepo) GetByExternalID(ctx context.Context, externalID string) (*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE external_id = $1 LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, externalID), "get message by external id")
}

// Update actualiza un mensaje (estado, marcas de entrega, id externo).
func (r *MessageRepo) Update(ctx context.Context, message *entity.Message) error {
	query := `
		UPDATE messages SET external_id = $2, status = $3, error_message = $4,
			delivered_at = $5, failed_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		message.ID, message.ExternalID, message.Status, message.ErrorMessage,
		message.DeliveredAt, message.FailedAt, message.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	return nil
}

// ListByCampaign lista mensajes de una campaña con paginación.
func (r *MessageRepo) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
		WHERE campaign_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, campaignID, limit, offset)
}

// ListByTenant lista mensajes del tenant con paginación.
func (r *MessageRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
		WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, tenantID, limit, offset)
}

func (r *MessageRepo) scanOne(row pgx.Row, op string) (*entity.Message, error) {
	var m entity.Message
	err := row.Scan(
		&m.ID, &m.TenantID, &m.CampaignID, &m.ContactID, &m.Phone, &m.Body,
		&m.ExternalID, &m.Status, &m.Cost, &m.ErrorMessage,
		&m.DeliveredAt, &m.FailedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

func (r *MessageRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.Message, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(
			&m.ID, &m.TenantID, &m.CampaignID, &m.ContactID, &m.Phone, &m.Body,
			&m.ExternalID, &m.Status, &m.Cost, &m.ErrorMessage,
			&m.DeliveredAt, &m.FailedAt, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
