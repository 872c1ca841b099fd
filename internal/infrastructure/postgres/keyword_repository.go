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

var _ repository.KeywordRepository = (*KeywordRepo)(nil)
var _ repository.KeywordActivityRepository = (*KeywordActivityRepo)(nil)

// KeywordRepo implementación de KeywordRepository (usable con pool o tx).
type KeywordRepo struct {
	q Querier
}

// NewKeywordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKeywordRepository(q Querier) *KeywordRepo {
	return &KeywordRepo{q: q}
}

const keywordColumns = `id, tenant_id, text, status, response_message,
	opt_in_group_id, campaign_id, deleted, created_at, updated_at`

// Create persiste un nuevo keyword.
func (r *KeywordRepo) Create(ctx context.Context, keyword *entity.Keyword) error {
	query := `
		INSERT INTO keywords (id, tenant_id, text, status, response_message,
			opt_in_group_id, campaign_id, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		keyword.ID, keyword.TenantID, keyword.Text, keyword.Status, keyword.ResponseMessage,
		keyword.OptInGroupID, keyword.CampaignID, keyword.Deleted, keyword.CreatedAt, keyword.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert keyword: %w", err)
	}
	return nil
}

// GetByID obtiene un keyword no borrado por ID.
func (r *KeywordRepo) GetByID(ctx context.Context, id string) (*entity.Keyword, error) {
	query := `SELECT ` + keywordColumns + ` FROM keywords WHERE id = $1 AND deleted = FALSE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get keyword")
}

// GetActiveByTenantAndText busca un keyword activo no borrado del tenant por
// texto, sin distinguir mayúsculas.
func (r *KeywordRepo) GetActiveByTenantAndText(ctx context.Context, tenantID, text string) (*entity.Keyword, error) {
	query := `SELECT ` + keywordColumns + ` FROM keywords
		WHERE tenant_id = $1 AND LOWER(text) = LOWER($2) AND status = 'active' AND deleted = FALSE`
	return r.scanOne(r.q.QueryRow(ctx, query, tenantID, text), "get keyword by text")
}

// Update actualiza un keyword.
func (r *KeywordRepo) Update(ctx context.Context, keyword *entity.Keyword) error {
	query := `
		UPDATE keywords SET status = $2, response_message = $3, opt_in_group_id = $4,
			campaign_id = $5, updated_at = $6
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(ctx, query,
		keyword.ID, keyword.Status, keyword.ResponseMessage, keyword.OptInGroupID,
		keyword.CampaignID, keyword.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update keyword: %w", err)
	}
	return nil
}

// ListByTenant lista keywords no borrados del tenant con paginación.
func (r *KeywordRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Keyword, error) {
	query := `SELECT ` + keywordColumns + ` FROM keywords
		WHERE tenant_id = $1 AND deleted = FALSE
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	defer rows.Close()
	var list []*entity.Keyword
	for rows.Next() {
		var k entity.Keyword
		if err := rows.Scan(
			&k.ID, &k.TenantID, &k.Text, &k.Status, &k.ResponseMessage,
			&k.OptInGroupID, &k.CampaignID, &k.Deleted, &k.CreatedAt, &k.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		list = append(list, &k)
	}
	return list, rows.Err()
}

// SoftDelete marca el keyword como borrado.
func (r *KeywordRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE keywords SET deleted = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete keyword: %w", err)
	}
	return nil
}

func (r *KeywordRepo) scanOne(row pgx.Row, op string) (*entity.Keyword, error) {
	var k entity.Keyword
	err := row.Scan(
		&k.ID, &k.TenantID, &k.Text, &k.Status, &k.ResponseMessage,
		&k.OptInGroupID, &k.CampaignID, &k.Deleted, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &k, nil
}

// KeywordActivityRepo implementación de la bitácora append-only de keywords.
type KeywordActivityRepo struct {
	q Querier
}

// NewKeywordActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKeywordActivityRepository(q Querier) *KeywordActivityRepo {
	return &KeywordActivityRepo{q: q}
}

// Append inserta una fila en la bitácora. No hay update ni delete.
func (r *KeywordActivityRepo) Append(ctx context.Context, activity *entity.KeywordActivity) error {
	query := `
		INSERT INTO keyword_activities (id, keyword_id, phone, incoming_message, response_message, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		activity.ID, activity.KeywordID, activity.Phone, activity.IncomingMessage,
		activity.ResponseMessage, activity.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert keyword activity: %w", err)
	}
	return nil
}

// ListByKeyword lista la bitácora de un keyword, más reciente primero.
func (r *KeywordActivityRepo) ListByKeyword(ctx context.Context, keywordID string, limit, offset int) ([]*entity.KeywordActivity, error) {
	query := `
		SELECT id, keyword_id, phone, incoming_message, response_message, received_at
		FROM keyword_activities WHERE keyword_id = $1
		ORDER BY received_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, keywordID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list keyword activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.KeywordActivity
	for rows.Next() {
		var a entity.KeywordActivity
		if err := rows.Scan(
			&a.ID, &a.KeywordID, &a.Phone, &a.IncomingMessage, &a.ResponseMessage, &a.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan keyword activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
