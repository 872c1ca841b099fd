package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

// KeywordUseCase casos de uso CRUD para keywords y consulta de su bitácora.
type KeywordUseCase struct {
	repo       repository.KeywordRepository
	activities repository.KeywordActivityRepository
	groups     repository.GroupRepository
}

// NewKeywordUseCase construye el caso de uso.
func NewKeywordUseCase(
	repo repository.KeywordRepository,
	activities repository.KeywordActivityRepository,
	groups repository.GroupRepository,
) *KeywordUseCase {
	return &KeywordUseCase{repo: repo, activities: activities, groups: groups}
}

// Create crea un keyword activo del tenant. El texto se guarda en mayúsculas
// y es único (case-insensitive) entre keywords activos del tenant.
func (uc *KeywordUseCase) Create(ctx context.Context, tenantID string, in dto.CreateKeywordRequest) (*dto.KeywordResponse, error) {
	text := strings.ToUpper(strings.TrimSpace(in.Text))
	if text == "" || strings.ContainsAny(text, " \t") {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetActiveByTenantAndText(ctx, tenantID, text)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.OptInGroupID != nil {
		if err := uc.checkGroup(ctx, tenantID, *in.OptInGroupID); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	keyword := &entity.Keyword{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		Text:            text,
		Status:          entity.KeywordStatusActive,
		ResponseMessage: in.ResponseMessage,
		OptInGroupID:    in.OptInGroupID,
		CampaignID:      in.CampaignID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, keyword); err != nil {
		return nil, err
	}
	return toKeywordResponse(keyword), nil
}

// GetByID obtiene un keyword del tenant.
func (uc *KeywordUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.KeywordResponse, error) {
	keyword, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if keyword == nil {
		return nil, nil
	}
	if keyword.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return toKeywordResponse(keyword), nil
}

// Update actualiza un keyword del tenant. El texto no cambia: es la clave
// que los remitentes ya conocen.
func (uc *KeywordUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateKeywordRequest) (*dto.KeywordResponse, error) {
	keyword, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if keyword == nil {
		return nil, nil
	}
	if keyword.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	if in.Status != nil {
		if *in.Status != entity.KeywordStatusActive && *in.Status != entity.KeywordStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		keyword.Status = *in.Status
	}
	if in.ResponseMessage != nil {
		keyword.ResponseMessage = *in.ResponseMessage
	}
	if in.OptInGroupID != nil {
		if *in.OptInGroupID == "" {
			keyword.OptInGroupID = nil
		} else {
			if err := uc.checkGroup(ctx, tenantID, *in.OptInGroupID); err != nil {
				return nil, err
			}
			keyword.OptInGroupID = in.OptInGroupID
		}
	}
	if in.CampaignID != nil {
		if *in.CampaignID == "" {
			keyword.CampaignID = nil
		} else {
			keyword.CampaignID = in.CampaignID
		}
	}
	keyword.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, keyword); err != nil {
		return nil, err
	}
	return toKeywordResponse(keyword), nil
}

// List lista keywords del tenant con paginación.
func (uc *KeywordUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.KeywordListResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.KeywordResponse, 0, len(list))
	for _, k := range list {
		items = append(items, *toKeywordResponse(k))
	}
	return &dto.KeywordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete marca el keyword como borrado (baja lógica). La bitácora se conserva.
func (uc *KeywordUseCase) Delete(ctx context.Context, tenantID, id string) error {
	keyword, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if keyword == nil {
		return domain.ErrNotFound
	}
	if keyword.TenantID != tenantID {
		return domain.ErrTenantMismatch
	}
	return uc.repo.SoftDelete(ctx, id)
}

// ListActivity lista la bitácora de un keyword del tenant, más reciente primero.
func (uc *KeywordUseCase) ListActivity(ctx context.Context, tenantID, keywordID string, limit, offset int) ([]dto.KeywordActivityResponse, error) {
	keyword, err := uc.repo.GetByID(ctx, keywordID)
	if err != nil {
		return nil, err
	}
	if keyword == nil {
		return nil, domain.ErrNotFound
	}
	if keyword.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	list, err := uc.activities.ListByKeyword(ctx, keywordID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.KeywordActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.KeywordActivityResponse{
			ID:              a.ID,
			KeywordID:       a.KeywordID,
			Phone:           a.Phone,
			IncomingMessage: a.IncomingMessage,
			ResponseMessage: a.ResponseMessage,
			ReceivedAt:      a.ReceivedAt,
		})
	}
	return items, nil
}

// checkGroup verifica que el grupo exista y pertenezca al tenant.
func (uc *KeywordUseCase) checkGroup(ctx context.Context, tenantID, groupID string) error {
	group, err := uc.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return domain.ErrInvalidInput
	}
	if group.TenantID != tenantID {
		return domain.ErrTenantMismatch
	}
	return nil
}

func toKeywordResponse(k *entity.Keyword) *dto.KeywordResponse {
	if k == nil {
		return nil
	}
	return &dto.KeywordResponse{
		ID:              k.ID,
		Text:            k.Text,
		Status:          k.Status,
		ResponseMessage: k.ResponseMessage,
		OptInGroupID:    k.OptInGroupID,
		CampaignID:      k.CampaignID,
		CreatedAt:       k.CreatedAt,
		UpdatedAt:       k.UpdatedAt,
	}
}
