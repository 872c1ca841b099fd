package usecase

import (
	"context"

	"github.com/jhoicas/Mercadeo-api/internal/application/automation"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

// AutomationUseCase expone el motor de automatización hacia la capa HTTP:
// registro de eventos custom (con verificación previa del tenant del
// contacto, que el caller HTTP sí conoce) y el barrido de inactividad.
type AutomationUseCase struct {
	triggers *automation.TriggerService
	contacts repository.ContactRepository
}

// NewAutomationUseCase construye el caso de uso.
func NewAutomationUseCase(triggers *automation.TriggerService, contacts repository.ContactRepository) *AutomationUseCase {
	return &AutomationUseCase{triggers: triggers, contacts: contacts}
}

// TriggerCustomEvent registra un evento de negocio contra un contacto del
// tenant. Aquí el contacto inexistente sí es error: el caller es la API del
// tenant, no un proveedor externo al que haya que responder 200.
func (uc *AutomationUseCase) TriggerCustomEvent(ctx context.Context, tenantID string, in dto.TriggerCustomEventRequest) error {
	contact, err := uc.contacts.GetByID(ctx, in.ContactID)
	if err != nil {
		return err
	}
	if contact == nil {
		return domain.ErrNotFound
	}
	if contact.TenantID != tenantID {
		return domain.ErrTenantMismatch
	}
	return uc.triggers.RegisterCustomEvent(ctx, in.EventName, in.ContactID, in.EventData)
}

// RunInactivitySweep ejecuta el barrido de inactividad de todos los tenants.
// Pensado para el scheduler; también se expone como endpoint interno.
func (uc *AutomationUseCase) RunInactivitySweep(ctx context.Context) error {
	return uc.triggers.CheckInactivityTriggers(ctx)
}
