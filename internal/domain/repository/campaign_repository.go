package repository

import (
	"context"

	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
)

// CampaignRepository define el puerto de persistencia para Campaign (DIP).
type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	GetByID(ctx context.Context, id string) (*entity.Campaign, error)
	Update(ctx context.Context, campaign *entity.Campaign) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Campaign, error)
	SoftDelete(ctx context.Context, id string) error
}
