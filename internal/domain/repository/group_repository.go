package repository

import (
	"context"

	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
)

// GroupRepository define el puerto de persistencia para Group y su membresía (DIP).
type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) error
	GetByID(ctx context.Context, id string) (*entity.Group, error)
	Update(ctx context.Context, group *entity.Group) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Group, error)
	SoftDelete(ctx context.Context, id string) error

	// GetLiveMember devuelve la membresía no-borrada del par (contacto, grupo),
	// o (nil, nil) si no existe.
	GetLiveMember(ctx context.Context, contactID, groupID string) (*entity.GroupMember, error)
	AddMember(ctx context.Context, member *entity.GroupMember) error
	ListMembers(ctx context.Context, groupID string, limit, offset int) ([]*entity.GroupMember, error)
}
