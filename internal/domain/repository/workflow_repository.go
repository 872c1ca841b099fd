package repository

import (
	"context"

	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
)

// WorkflowRepository define el puerto de persistencia para Workflow (DIP).
type WorkflowRepository interface {
	Create(ctx context.Context, workflow *entity.Workflow) error
	GetByID(ctx context.Context, id string) (*entity.Workflow, error)
	Update(ctx context.Context, workflow *entity.Workflow) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Workflow, error)
	// ListActiveByTenantAndType lista workflows activos no-borrados del tenant
	// con el trigger type dado. Es la consulta de candidatos del resolver.
	ListActiveByTenantAndType(ctx context.Context, tenantID, triggerType string) ([]*entity.Workflow, error)
	// ListActiveByType lista workflows activos de TODOS los tenants con el
	// trigger type dado (barrido de inactividad).
	ListActiveByType(ctx context.Context, triggerType string) ([]*entity.Workflow, error)
	SoftDelete(ctx context.Context, id string) error
}
