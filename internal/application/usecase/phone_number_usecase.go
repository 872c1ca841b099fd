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

// PhoneNumberUseCase administra el pool de números de la plataforma y su
// asignación a tenants. El número asignado es la llave de enrutamiento del
// webhook entrante, así que nunca puede estar en dos tenants a la vez.
type PhoneNumberUseCase struct {
	repo repository.PhoneNumberRepository
}

// NewPhoneNumberUseCase construye el caso de uso.
func NewPhoneNumberUseCase(repo repository.PhoneNumberRepository) *PhoneNumberUseCase {
	return &PhoneNumberUseCase{repo: repo}
}

// Provision da de alta un número en el pool, sin asignar.
func (uc *PhoneNumberUseCase) Provision(ctx context.Context, in dto.ProvisionNumberRequest) (*dto.PhoneNumberResponse, error) {
	existing, err := uc.repo.GetByNumber(ctx, in.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Capabilities == "" {
		in.Capabilities = "sms"
	}
	now := time.Now()
	number := &entity.PhoneNumber{
		ID:           uuid.New().String(),
		Number:       in.Number,
		Capabilities: in.Capabilities,
		MonthlyCost:  in.MonthlyCost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, number); err != nil {
		return nil, err
	}
	return toPhoneNumberResponse(number), nil
}

// Assign asigna un número libre del pool al tenant. Un número ya asignado
// (a quien sea) produce ErrNumberAssigned.
func (uc *PhoneNumberUseCase) Assign(ctx context.Context, tenantID, id string) (*dto.PhoneNumberResponse, error) {
	number, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if number == nil {
		return nil, domain.ErrNotFound
	}
	if number.TenantID != nil {
		return nil, domain.ErrNumberAssigned
	}
	number.TenantID = &tenantID
	number.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, number); err != nil {
		return nil, err
	}
	return toPhoneNumberResponse(number), nil
}

// Release devuelve al pool un número del tenant. Los mensajes entrantes a un
// número liberado se descartan en el webhook.
func (uc *PhoneNumberUseCase) Release(ctx context.Context, tenantID, id string) error {
	number, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if number == nil {
		return domain.ErrNotFound
	}
	if number.TenantID == nil || *number.TenantID != tenantID {
		return domain.ErrTenantMismatch
	}
	number.TenantID = nil
	number.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, number)
}

// ListAvailable lista los números del pool sin asignar.
func (uc *PhoneNumberUseCase) ListAvailable(ctx context.Context, limit, offset int) (*dto.PhoneNumberListResponse, error) {
	list, err := uc.repo.ListAvailable(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPhoneNumberList(list, limit, offset), nil
}

// ListByTenant lista los números asignados al tenant.
func (uc *PhoneNumberUseCase) ListByTenant(ctx context.Context, tenantID string, limit, offset int) (*dto.PhoneNumberListResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPhoneNumberList(list, limit, offset), nil
}

func toPhoneNumberList(list []*entity.PhoneNumber, limit, offset int) *dto.PhoneNumberListResponse {
	items := make([]dto.PhoneNumberResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toPhoneNumberResponse(n))
	}
	return &dto.PhoneNumberListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func toPhoneNumberResponse(n *entity.PhoneNumber) *dto.PhoneNumberResponse {
	if n == nil {
		return nil
	}
	return &dto.PhoneNumberResponse{
		ID:           n.ID,
		Number:       n.Number,
		TenantID:     n.TenantID,
		Capabilities: n.Capabilities,
		MonthlyCost:  n.MonthlyCost,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}
