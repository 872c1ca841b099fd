package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

// SuppressionUseCase administra la lista de supresión del tenant. Las
// supresiones del canal entrante (STOP, rebotes) las registra el adaptador
// de webhooks; aquí solo viven las manuales.
type SuppressionUseCase struct {
	repo repository.SuppressionRepository
}

// NewSuppressionUseCase construye el caso de uso.
func NewSuppressionUseCase(repo repository.SuppressionRepository) *SuppressionUseCase {
	return &SuppressionUseCase{repo: repo}
}

// Create agrega una supresión manual. Una supresión vigente para el mismo
// identificador produce ErrDuplicate.
func (uc *SuppressionUseCase) Create(ctx context.Context, tenantID string, in dto.CreateSuppressionRequest) (*dto.SuppressionResponse, error) {
	switch in.Type {
	case entity.SuppressionOptOut, entity.SuppressionBounce, entity.SuppressionComplaint, entity.SuppressionManual:
	default:
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetActiveByTenantAndIdentifier(ctx, tenantID, in.Identifier)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	suppression := &entity.Suppression{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Identifier: in.Identifier,
		Type:       in.Type,
		Reason:     in.Reason,
		Source:     "manual",
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, suppression); err != nil {
		return nil, err
	}
	return toSuppressionResponse(suppression), nil
}

// List lista supresiones del tenant con paginación.
func (uc *SuppressionUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.SuppressionListResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SuppressionResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSuppressionResponse(s))
	}
	return &dto.SuppressionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete levanta una supresión del tenant. El contacto vuelve a ser
// contactable solo si además tiene sus flags de opt-in.
func (uc *SuppressionUseCase) Delete(ctx context.Context, tenantID, id string) error {
	suppression, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if suppression == nil {
		return domain.ErrNotFound
	}
	if suppression.TenantID != tenantID {
		return domain.ErrTenantMismatch
	}
	return uc.repo.Delete(ctx, id)
}

func toSuppressionResponse(s *entity.Suppression) *dto.SuppressionResponse {
	if s == nil {
		return nil
	}
	return &dto.SuppressionResponse{
		ID:         s.ID,
		TenantID:   s.TenantID,
		Identifier: s.Identifier,
		Type:       s.Type,
		Reason:     s.Reason,
		Source:     s.Source,
		CreatedAt:  s.CreatedAt,
	}
}
