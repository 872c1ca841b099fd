package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

var _ repository.CampaignRepository = (*CampaignRepo)(nil)

// CampaignRepo implementación de CampaignRepository (usable con pool o tx).
type CampaignRepo struct {
	q Querier
}

// NewCampaignRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCampaignRepository(q Querier) *CampaignRepo {
	return &CampaignRepo{q: q}
}

const campaignColumns = `id, tenant_id, name, message_body, status, group_id,
	segment_cost, deleted, created_at, updated_at`

// Create persiste una nueva campaña.
func (r *CampaignRepo) Create(ctx context.Context, campaign *entity.Campaign) error {
	query := `
		INSERT INTO campaigns (id, tenant_id, name, message_body, status, group_id,
			segment_cost, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		campaign.ID, campaign.TenantID, campaign.Name, campaign.MessageBody, campaign.Status,
		campaign.GroupID, campaign.SegmentCost, campaign.Deleted, campaign.CreatedAt, campaign.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// GetByID obtiene una campaña no borrada por ID.
func (r *CampaignRepo) GetByID(ctx context.Context, id string) (*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1 AND deleted = FALSE`
	var c entity.Campaign
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.MessageBody, &c.Status,
		&c.GroupID, &c.SegmentCost, &c.Deleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return &c, nil
}

// Update actualiza una campaña.
func (r *CampaignRepo) Update(ctx context.Context, campaign *entity.Campaign) error {
	query := `
		UPDATE campaigns SET name = $2, message_body = $3, status = $4, group_id = $5,
			segment_cost = $6, updated_at = $7
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(ctx, query,
		campaign.ID, campaign.Name, campaign.MessageBody, campaign.Status, campaign.GroupID,
		campaign.SegmentCost, campaign.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	return nil
}

// ListByTenant lista campañas no borradas del tenant con paginación.
func (r *CampaignRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns
		WHERE tenant_id = $1 AND deleted = FALSE
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Campaign
	for rows.Next() {
		var c entity.Campaign
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.Name, &c.MessageBody, &c.Status,
			&c.GroupID, &c.SegmentCost, &c.Deleted, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SoftDelete marca la campaña como borrada.
func (r *CampaignRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE campaigns SET deleted = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete campaign: %w", err)
	}
	return nil
}
