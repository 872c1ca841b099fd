package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para Contact (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no hay fila no-borrada.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	GetByPhoneAndTenant(ctx context.Context, phone, tenantID string) (*entity.Contact, error)
	// GetFirstByPhone busca por teléfono sin filtrar tenant (primer match).
	// Solo lo usa el procesamiento de opt-out entrante; ver notas de diseño.
	GetFirstByPhone(ctx context.Context, phone string) (*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Contact, error)
	// ListInactiveByTenant lista contactos activos del tenant cuyo UpdatedAt
	// es anterior a `before`, paginados para el barrido de inactividad.
	ListInactiveByTenant(ctx context.Context, tenantID string, before time.Time, limit, offset int) ([]*entity.Contact, error)
	SoftDelete(ctx context.Context, id string) error
}
