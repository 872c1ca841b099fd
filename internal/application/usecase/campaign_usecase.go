package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mercadeo-api/internal/application/automation"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

// Tamaño de página al recorrer la audiencia de una campaña.
const sendBatchSize = 100

// CampaignUseCase casos de uso de campañas: CRUD y el envío masivo, que
// materializa un Message en estado queued por cada contacto elegible del
// grupo y encola su despacho.
type CampaignUseCase struct {
	repo         repository.CampaignRepository
	groups       repository.GroupRepository
	contacts     repository.ContactRepository
	messages     repository.MessageRepository
	suppressions repository.SuppressionRepository
	queue        automation.TaskQueue
}

// NewCampaignUseCase construye el caso de uso.
func NewCampaignUseCase(
	repo repository.CampaignRepository,
	groups repository.GroupRepository,
	contacts repository.ContactRepository,
	messages repository.MessageRepository,
	suppressions repository.SuppressionRepository,
	queue automation.TaskQueue,
) *CampaignUseCase {
	return &CampaignUseCase{
		repo:         repo,
		groups:       groups,
		contacts:     contacts,
		messages:     messages,
		suppressions: suppressions,
		queue:        queue,
	}
}

// Create crea una campaña en borrador.
func (uc *CampaignUseCase) Create(ctx context.Context, tenantID string, in dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	if in.GroupID != nil {
		group, err := uc.groups.GetByID(ctx, *in.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, domain.ErrInvalidInput
		}
		if group.TenantID != tenantID {
			return nil, domain.ErrTenantMismatch
		}
	}
	now := time.Now()
	campaign := &entity.Campaign{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        in.Name,
		MessageBody: in.MessageBody,
		Status:      entity.CampaignStatusDraft,
		GroupID:     in.GroupID,
		SegmentCost: in.SegmentCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign), nil
}

// GetByID obtiene una campaña del tenant.
func (uc *CampaignUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.CampaignResponse, error) {
	campaign, err := uc.getOwned(ctx, tenantID, id)
	if err != nil || campaign == nil {
		return nil, err
	}
	return toCampaignResponse(campaign), nil
}

// List lista campañas del tenant con paginación.
func (uc *CampaignUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.CampaignListResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CampaignResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCampaignResponse(c))
	}
	return &dto.CampaignListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete marca la campaña como borrada. Una campaña en envío no se borra.
func (uc *CampaignUseCase) Delete(ctx context.Context, tenantID, id string) error {
	campaign, err := uc.getOwned(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if campaign == nil {
		return domain.ErrNotFound
	}
	if campaign.Status == entity.CampaignStatusSending {
		return domain.ErrConflict
	}
	return uc.repo.SoftDelete(ctx, id)
}

// Send dispara el envío de una campaña en borrador o agendada: crea un
// Message queued por cada miembro vivo del grupo que esté activo, con opt-in
// de SMS y sin supresión vigente, y encola su despacho. Los contactos
// saltados se cuentan pero no interrumpen el envío.
func (uc *CampaignUseCase) Send(ctx context.Context, tenantID, id string) (*dto.SendCampaignResponse, error) {
	campaign, err := uc.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}
	if campaign.Status != entity.CampaignStatusDraft && campaign.Status != entity.CampaignStatusScheduled {
		return nil, domain.ErrConflict
	}
	if campaign.GroupID == nil {
		return nil, domain.ErrInvalidInput
	}

	campaign.Status = entity.CampaignStatusSending
	campaign.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	enqueued, skipped := 0, 0
	offset := 0
	for {
		members, err := uc.groups.ListMembers(ctx, *campaign.GroupID, sendBatchSize, offset)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			ok, err := uc.sendToContact(ctx, campaign, m.ContactID)
			if err != nil {
				return nil, err
			}
			if ok {
				enqueued++
			} else {
				skipped++
			}
		}
		if len(members) < sendBatchSize {
			break
		}
		offset += sendBatchSize
	}

	return &dto.SendCampaignResponse{
		CampaignID: campaign.ID,
		Enqueued:   enqueued,
		Skipped:    skipped,
		TotalCost:  campaign.SegmentCost.Mul(decimal.NewFromInt(int64(enqueued))),
	}, nil
}

// sendToContact crea y encola el mensaje de un miembro, o lo salta (false)
// si el contacto no es elegible.
func (uc *CampaignUseCase) sendToContact(ctx context.Context, campaign *entity.Campaign, contactID string) (bool, error) {
	contact, err := uc.contacts.GetByID(ctx, contactID)
	if err != nil {
		return false, err
	}
	if contact == nil || !contact.Active || !contact.SMSOptIn || contact.TenantID != campaign.TenantID {
		return false, nil
	}
	suppression, err := uc.suppressions.GetActiveByTenantAndIdentifier(ctx, campaign.TenantID, contact.Phone)
	if err != nil {
		return false, err
	}
	if suppression != nil {
		return false, nil
	}

	now := time.Now()
	message := &entity.Message{
		ID:         uuid.New().String(),
		TenantID:   campaign.TenantID,
		CampaignID: &campaign.ID,
		ContactID:  contact.ID,
		Phone:      contact.Phone,
		Body:       campaign.MessageBody,
		Status:     entity.MessageStatusQueued,
		Cost:       campaign.SegmentCost,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.messages.Create(ctx, message); err != nil {
		return false, err
	}
	job := automation.Job{
		Type:      automation.JobMessageSend,
		TenantID:  campaign.TenantID,
		ContactID: contact.ID,
		MessageID: message.ID,
	}
	if err := uc.queue.Enqueue(ctx, job); err != nil {
		return false, err
	}
	return true, nil
}

// ListMessages lista los mensajes de una campaña del tenant.
func (uc *CampaignUseCase) ListMessages(ctx context.Context, tenantID, id string, limit, offset int) ([]dto.MessageResponse, error) {
	campaign, err := uc.getOwned(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.messages.ListByCampaign(ctx, id, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MessageResponse, 0, len(list))
	for _, msg := range list {
		items = append(items, *toMessageResponse(msg))
	}
	return items, nil
}

func (uc *CampaignUseCase) getOwned(ctx context.Context, tenantID, id string) (*entity.Campaign, error) {
	campaign, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, nil
	}
	if campaign.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return campaign, nil
}

func toCampaignResponse(c *entity.Campaign) *dto.CampaignResponse {
	if c == nil {
		return nil
	}
	return &dto.CampaignResponse{
		ID:          c.ID,
		Name:        c.Name,
		MessageBody: c.MessageBody,
		Status:      c.Status,
		GroupID:     c.GroupID,
		SegmentCost: c.SegmentCost,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	if m == nil {
		return nil
	}
	return &dto.MessageResponse{
		ID:           m.ID,
		CampaignID:   m.CampaignID,
		ContactID:    m.ContactID,
		Phone:        m.Phone,
		Body:         m.Body,
		ExternalID:   m.ExternalID,
		Status:       m.Status,
		Cost:         m.Cost,
		ErrorMessage: m.ErrorMessage,
		DeliveredAt:  m.DeliveredAt,
		FailedAt:     m.FailedAt,
		CreatedAt:    m.CreatedAt,
	}
}
