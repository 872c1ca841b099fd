package repository

import (
	"context"

	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
)

// MessageRepository define el puerto de persistencia para Message (DIP).
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)
	// GetByExternalID busca el mensaje por el id del proveedor de envío.
	GetByExternalID(ctx context.Context, externalID string) (*entity.Message, error)
	Update(ctx context.Context, message *entity.Message) error
	ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*entity.Message, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Message, error)
}
