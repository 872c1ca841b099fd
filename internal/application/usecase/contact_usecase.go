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

// ContactUseCase casos de uso CRUD para contactos. El teléfono es único por
// tenant entre contactos no borrados.
type ContactUseCase struct {
	repo repository.ContactRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo}
}

// Create crea un contacto del tenant. Active inicia en true.
func (uc *ContactUseCase) Create(ctx context.Context, tenantID string, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	existing, err := uc.repo.GetByPhoneAndTenant(ctx, in.Phone, tenantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	contact := &entity.Contact{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		Phone:      in.Phone,
		Email:      in.Email,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		SMSOptIn:   in.SMSOptIn,
		EmailOptIn: in.EmailOptIn,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

// GetByID obtiene un contacto del tenant.
func (uc *ContactUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, nil
	}
	if contact.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return toContactResponse(contact), nil
}

// Update actualiza un contacto del tenant (campos nil no cambian).
// El teléfono no se modifica: identifica al contacto en el canal entrante.
func (uc *ContactUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, nil
	}
	if contact.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	if in.Email != nil {
		contact.Email = *in.Email
	}
	if in.FirstName != nil {
		contact.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		contact.LastName = *in.LastName
	}
	if in.SMSOptIn != nil {
		contact.SMSOptIn = *in.SMSOptIn
	}
	if in.EmailOptIn != nil {
		contact.EmailOptIn = *in.EmailOptIn
	}
	if in.Active != nil {
		contact.Active = *in.Active
	}
	contact.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

// List lista contactos del tenant con paginación.
func (uc *ContactUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.ContactListResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toContactResponse(c))
	}
	return &dto.ContactListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete marca el contacto como borrado (baja lógica).
func (uc *ContactUseCase) Delete(ctx context.Context, tenantID, id string) error {
	contact, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return domain.ErrNotFound
	}
	if contact.TenantID != tenantID {
		return domain.ErrTenantMismatch
	}
	return uc.repo.SoftDelete(ctx, id)
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	if c == nil {
		return nil
	}
	return &dto.ContactResponse{
		ID:         c.ID,
		Phone:      c.Phone,
		Email:      c.Email,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		SMSOptIn:   c.SMSOptIn,
		EmailOptIn: c.EmailOptIn,
		Active:     c.Active,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
