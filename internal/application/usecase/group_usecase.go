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

// GroupUseCase casos de uso para grupos de contactos y su membresía.
type GroupUseCase struct {
	repo     repository.GroupRepository
	contacts repository.ContactRepository
}

// NewGroupUseCase construye el caso de uso.
func NewGroupUseCase(repo repository.GroupRepository, contacts repository.ContactRepository) *GroupUseCase {
	return &GroupUseCase{repo: repo, contacts: contacts}
}

// Create crea un grupo del tenant.
func (uc *GroupUseCase) Create(ctx context.Context, tenantID string, in dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	now := time.Now()
	group := &entity.Group{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, group); err != nil {
		return nil, err
	}
	return toGroupResponse(group), nil
}

// GetByID obtiene un grupo del tenant.
func (uc *GroupUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.GroupResponse, error) {
	group, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}
	if group.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return toGroupResponse(group), nil
}

// Update actualiza un grupo del tenant (campos nil no cambian).
func (uc *GroupUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	group, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}
	if group.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	if in.Name != nil {
		group.Name = *in.Name
	}
	group.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, group); err != nil {
		return nil, err
	}
	return toGroupResponse(group), nil
}

// List lista grupos del tenant con paginación.
func (uc *GroupUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.GroupListResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GroupResponse, 0, len(list))
	for _, g := range list {
		items = append(items, *toGroupResponse(g))
	}
	return &dto.GroupListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete marca el grupo como borrado (baja lógica). Las membresías quedan
// huérfanas pero inertes: nada las recorre si el grupo no está vivo.
func (uc *GroupUseCase) Delete(ctx context.Context, tenantID, id string) error {
	group, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if group == nil {
		return domain.ErrNotFound
	}
	if group.TenantID != tenantID {
		return domain.ErrTenantMismatch
	}
	return uc.repo.SoftDelete(ctx, id)
}

// AddMember inscribe un contacto del tenant en el grupo. Una membresía viva
// previa produce ErrDuplicate.
func (uc *GroupUseCase) AddMember(ctx context.Context, tenantID, groupID string, in dto.AddGroupMemberRequest) (*dto.GroupMemberResponse, error) {
	group, err := uc.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrNotFound
	}
	if group.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	contact, err := uc.contacts.GetByID(ctx, in.ContactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrInvalidInput
	}
	if contact.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	existing, err := uc.repo.GetLiveMember(ctx, in.ContactID, groupID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	member := &entity.GroupMember{
		ID:        uuid.New().String(),
		ContactID: in.ContactID,
		GroupID:   groupID,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return toGroupMemberResponse(member), nil
}

// ListMembers lista las membresías vivas de un grupo del tenant.
func (uc *GroupUseCase) ListMembers(ctx context.Context, tenantID, groupID string, limit, offset int) (*dto.GroupMemberListResponse, error) {
	group, err := uc.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrNotFound
	}
	if group.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	list, err := uc.repo.ListMembers(ctx, groupID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GroupMemberResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toGroupMemberResponse(m))
	}
	return &dto.GroupMemberListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toGroupResponse(g *entity.Group) *dto.GroupResponse {
	if g == nil {
		return nil
	}
	return &dto.GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func toGroupMemberResponse(m *entity.GroupMember) *dto.GroupMemberResponse {
	if m == nil {
		return nil
	}
	return &dto.GroupMemberResponse{
		ID:        m.ID,
		GroupID:   m.GroupID,
		ContactID: m.ContactID,
		JoinedAt:  m.CreatedAt,
	}
}
