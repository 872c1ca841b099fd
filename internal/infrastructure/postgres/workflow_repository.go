package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

var _ repository.WorkflowRepository = (*WorkflowRepo)(nil)

// WorkflowRepo implementación de WorkflowRepository (usable con pool o tx).
type WorkflowRepo struct {
	q Querier
}

// NewWorkflowRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkflowRepository(q Querier) *WorkflowRepo {
	return &WorkflowRepo{q: q}
}

const workflowColumns = `id, tenant_id, name, trigger_type, trigger_criteria,
	active, deleted, created_at, updated_at`

// Create persiste un nuevo workflow.
func (r *WorkflowRepo) Create(ctx context.Context, workflow *entity.Workflow) error {
	query := `
		INSERT INTO workflows (id, tenant_id, name, trigger_type, trigger_criteria,
			active, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		workflow.ID, workflow.TenantID, workflow.Name, workflow.TriggerType, workflow.TriggerCriteria,
		workflow.Active, workflow.Deleted, workflow.CreatedAt, workflow.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert workflow: %w", err)
	}
	return nil
}

// GetByID obtiene un workflow no borrado por ID.
func (r *WorkflowRepo) GetByID(ctx context.Context, id string) (*entity.Workflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows WHERE id = $1 AND deleted = FALSE`
	var wf entity.Workflow
	err := r.q.QueryRow(ctx, query, id).Scan(
		&wf.ID, &wf.TenantID, &wf.Name, &wf.TriggerType, &wf.TriggerCriteria,
		&wf.Active, &wf.Deleted, &wf.CreatedAt, &wf.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workflow: %w", err)
	}
	return &wf, nil
}

// Update actualiza un workflow.
func (r *WorkflowRepo) Update(ctx context.Context, workflow *entity.Workflow) error {
	query := `
		UPDATE workflows SET name = $2, trigger_criteria = $3, active = $4, updated_at = $5
		WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(ctx, query,
		workflow.ID, workflow.Name, workflow.TriggerCriteria, workflow.Active, workflow.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update workflow: %w", err)
	}
	return nil
}

// ListByTenant lista workflows no borrados del tenant con paginación.
func (r *WorkflowRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Workflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows
		WHERE tenant_id = $1 AND deleted = FALSE
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(ctx, query, tenantID, limit, offset)
}

// ListActiveByTenantAndType lista workflows activos no borrados del tenant
// con el trigger type dado. Es la consulta de candidatos del resolver.
func (r *WorkflowRepo) ListActiveByTenantAndType(ctx context.Context, tenantID, triggerType string) ([]*entity.Workflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows
		WHERE tenant_id = $1 AND trigger_type = $2 AND active = TRUE AND deleted = FALSE`
	return r.scanMany(ctx, query, tenantID, triggerType)
}

// ListActiveByType lista workflows activos de todos los tenants con el
// trigger type dado (barrido de inactividad).
func (r *WorkflowRepo) ListActiveByType(ctx context.Context, triggerType string) ([]*entity.Workflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows
		WHERE trigger_type = $1 AND active = TRUE AND deleted = FALSE`
	return r.scanMany(ctx, query, triggerType)
}

// SoftDelete marca el workflow como borrado.
func (r *WorkflowRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE workflows SET deleted = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete workflow: %w", err)
	}
	return nil
}

func (r *WorkflowRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.Workflow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer rows.Close()
	var list []*entity.Workflow
	for rows.Next() {
		var wf entity.Workflow
		if err := rows.Scan(
			&wf.ID, &wf.TenantID, &wf.Name, &wf.TriggerType, &wf.TriggerCriteria,
			&wf.Active, &wf.Deleted, &wf.CreatedAt, &wf.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}
		list = append(list, &wf)
	}
	return list, rows.Err()
}
