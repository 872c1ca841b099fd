package repository

import (
	"context"

	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
)

// PhoneNumberRepository define el puerto de persistencia para PhoneNumber (DIP).
type PhoneNumberRepository interface {
	Create(ctx context.Context, number *entity.PhoneNumber) error
	GetByID(ctx context.Context, id string) (*entity.PhoneNumber, error)
	// GetByNumber busca un número no-borrado por su valor E.164.
	GetByNumber(ctx context.Context, number string) (*entity.PhoneNumber, error)
	Update(ctx context.Context, number *entity.PhoneNumber) error
	// ListAvailable lista números del pool sin tenant asignado.
	ListAvailable(ctx context.Context, limit, offset int) ([]*entity.PhoneNumber, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.PhoneNumber, error)
}
