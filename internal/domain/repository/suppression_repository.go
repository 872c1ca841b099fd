package repository

import (
	"context"

	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
)

// SuppressionRepository define el puerto de persistencia para Suppression (DIP).
type SuppressionRepository interface {
	Create(ctx context.Context, suppression *entity.Suppression) error
	GetByID(ctx context.Context, id string) (*entity.Suppression, error)
	// GetActiveByTenantAndIdentifier devuelve la supresión vigente del par
	// (tenant, teléfono-o-email), o (nil, nil) si no hay.
	GetActiveByTenantAndIdentifier(ctx context.Context, tenantID, identifier string) (*entity.Suppression, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Suppression, error)
	Delete(ctx context.Context, id string) error
}
