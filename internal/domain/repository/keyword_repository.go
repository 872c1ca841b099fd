package repository

import (
	"context"

	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
)

// KeywordRepository define el puerto de persistencia para Keyword (DIP).
type KeywordRepository interface {
	Create(ctx context.Context, keyword *entity.Keyword) error
	GetByID(ctx context.Context, id string) (*entity.Keyword, error)
	// GetActiveByTenantAndText busca un keyword activo no-borrado del tenant
	// por texto, sin distinguir mayúsculas.
	GetActiveByTenantAndText(ctx context.Context, tenantID, text string) (*entity.Keyword, error)
	Update(ctx context.Context, keyword *entity.Keyword) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Keyword, error)
	SoftDelete(ctx context.Context, id string) error
}

// KeywordActivityRepository define el puerto de la bitácora de keywords.
// Solo inserta y lista: las filas nunca se modifican.
type KeywordActivityRepository interface {
	Append(ctx context.Context, activity *entity.KeywordActivity) error
	ListByKeyword(ctx context.Context, keywordID string, limit, offset int) ([]*entity.KeywordActivity, error)
}
