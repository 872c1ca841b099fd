package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercadeo-api/internal/application/automation"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

// WorkflowUseCase casos de uso CRUD para workflows. El criterio se valida
// parseándolo con el mismo intérprete que usa el resolver, para que no entren
// a la base criterios que jamás dispararían.
type WorkflowUseCase struct {
	repo repository.WorkflowRepository
}

// NewWorkflowUseCase construye el caso de uso.
func NewWorkflowUseCase(repo repository.WorkflowRepository) *WorkflowUseCase {
	return &WorkflowUseCase{repo: repo}
}

// Create crea un workflow del tenant.
func (uc *WorkflowUseCase) Create(ctx context.Context, tenantID string, in dto.CreateWorkflowRequest) (*dto.WorkflowResponse, error) {
	if err := validateCriteria(in.TriggerType, in.TriggerCriteria); err != nil {
		return nil, err
	}
	now := time.Now()
	workflow := &entity.Workflow{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		Name:            in.Name,
		TriggerType:     in.TriggerType,
		TriggerCriteria: in.TriggerCriteria,
		Active:          in.Active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, workflow); err != nil {
		return nil, err
	}
	return toWorkflowResponse(workflow), nil
}

// GetByID obtiene un workflow del tenant.
func (uc *WorkflowUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.WorkflowResponse, error) {
	workflow, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, nil
	}
	if workflow.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return toWorkflowResponse(workflow), nil
}

// Update actualiza un workflow del tenant. El trigger type no cambia: un
// workflow de keyword no se convierte en uno de eventos.
func (uc *WorkflowUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateWorkflowRequest) (*dto.WorkflowResponse, error) {
	workflow, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, nil
	}
	if workflow.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	if in.Name != nil {
		workflow.Name = *in.Name
	}
	if in.TriggerCriteria != nil {
		if err := validateCriteria(workflow.TriggerType, *in.TriggerCriteria); err != nil {
			return nil, err
		}
		workflow.TriggerCriteria = *in.TriggerCriteria
	}
	if in.Active != nil {
		workflow.Active = *in.Active
	}
	workflow.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, workflow); err != nil {
		return nil, err
	}
	return toWorkflowResponse(workflow), nil
}

// List lista workflows del tenant con paginación.
func (uc *WorkflowUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.WorkflowListResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WorkflowResponse, 0, len(list))
	for _, wf := range list {
		items = append(items, *toWorkflowResponse(wf))
	}
	return &dto.WorkflowListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete marca el workflow como borrado (baja lógica).
func (uc *WorkflowUseCase) Delete(ctx context.Context, tenantID, id string) error {
	workflow, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if workflow == nil {
		return domain.ErrNotFound
	}
	if workflow.TenantID != tenantID {
		return domain.ErrTenantMismatch
	}
	return uc.repo.SoftDelete(ctx, id)
}

// validateCriteria rechaza criterios que el resolver nunca dispararía.
// Nótese que un workflow de tipo event con criterio de inactividad es válido:
// el barrido de inactividad los busca justamente ahí.
func validateCriteria(triggerType, criteria string) error {
	switch triggerType {
	case entity.TriggerTypeEvent, entity.TriggerTypeCustom:
		if automation.ParseEventCriteria(criteria).EventType == "" {
			return domain.ErrInvalidInput
		}
	case entity.TriggerTypeKeyword:
		if len(automation.ParseKeywordCriteria(criteria).Keywords) == 0 {
			return domain.ErrInvalidInput
		}
	case entity.TriggerTypeInactivity:
		if _, ok := automation.ParseInactivityCriteria(criteria); !ok {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func toWorkflowResponse(wf *entity.Workflow) *dto.WorkflowResponse {
	if wf == nil {
		return nil
	}
	return &dto.WorkflowResponse{
		ID:              wf.ID,
		Name:            wf.Name,
		TriggerType:     wf.TriggerType,
		TriggerCriteria: wf.TriggerCriteria,
		Active:          wf.Active,
		CreatedAt:       wf.CreatedAt,
		UpdatedAt:       wf.UpdatedAt,
	}
}
