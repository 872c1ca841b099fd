package automation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
	"github.com/jhoicas/Mercadeo-api/pkg/logger"
)

// Tamaño de lote del barrido de inactividad. Solo acota el working set;
// no cambia el resultado.
const inactivityBatchSize = 100

// TriggerService resuelve eventos entrantes hacia los workflows del tenant
// dueño del contacto y encola su ejecución. El tenant del contacto es la
// única frontera de aislamiento: jamás se evalúa un workflow de otro tenant,
// aunque su criterio coincida.
type TriggerService struct {
	contacts   repository.ContactRepository
	workflows  repository.WorkflowRepository
	keywords   repository.KeywordRepository
	activities repository.KeywordActivityRepository
	groups     repository.GroupRepository
	queue      TaskQueue
	log        *logger.Logger
}

// NewTriggerService construye el servicio.
func NewTriggerService(
	contacts repository.ContactRepository,
	workflows repository.WorkflowRepository,
	keywords repository.KeywordRepository,
	activities repository.KeywordActivityRepository,
	groups repository.GroupRepository,
	queue TaskQueue,
	log *logger.Logger,
) *TriggerService {
	return &TriggerService{
		contacts:   contacts,
		workflows:  workflows,
		keywords:   keywords,
		activities: activities,
		groups:     groups,
		queue:      queue,
		log:        log,
	}
}

// TriggerEvent encola la ejecución de cada workflow activo del tenant dueño
// del contacto cuyo criterio coincida con (eventType, eventData). Un contacto
// inexistente o borrado es un no-op registrado, no un error. Cero matches es
// un resultado normal y silencioso. No hay deduplicación: dos llamadas
// idénticas encolan dos ejecuciones (at-least-once).
func (s *TriggerService) TriggerEvent(ctx context.Context, eventType, contactID string, eventData map[string]string) error {
	contact, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		return fmt.Errorf("buscar contacto %s: %w", contactID, err)
	}
	if contact == nil {
		s.log.Warn().Str("contact_id", contactID).Str("event_type", eventType).
			Msg("evento para contacto inexistente, se ignora")
		return nil
	}

	candidates, err := s.workflows.ListActiveByTenantAndType(ctx, contact.TenantID, entity.TriggerTypeEvent)
	if err != nil {
		return fmt.Errorf("listar workflows de evento: %w", err)
	}
	for _, wf := range candidates {
		if ParseEventCriteria(wf.TriggerCriteria).Matches(eventType, eventData) {
			s.enqueueExecution(ctx, wf, contact)
		}
	}

	// Segunda ronda de candidatos: workflows de keyword, solo cuando el
	// evento es KeywordReceived y trae un keyword no vacío.
	if eventType == entity.EventKeywordReceived && eventData[DataKeyKeyword] != "" {
		kwWorkflows, err := s.workflows.ListActiveByTenantAndType(ctx, contact.TenantID, entity.TriggerTypeKeyword)
		if err != nil {
			return fmt.Errorf("listar workflows de keyword: %w", err)
		}
		for _, wf := range kwWorkflows {
			if ParseKeywordCriteria(wf.TriggerCriteria).Matches(eventData[DataKeyKeyword]) {
				s.enqueueExecution(ctx, wf, contact)
			}
		}
	}
	return nil
}

// CheckInactivityTriggers recorre los workflows de evento con criterio de
// inactividad y encola una ejecución por cada contacto inactivo del tenant
// dueño de cada workflow. Pensado para invocarse periódicamente (cron).
func (s *TriggerService) CheckInactivityTriggers(ctx context.Context) error {
	workflows, err := s.workflows.ListActiveByType(ctx, entity.TriggerTypeEvent)
	if err != nil {
		return fmt.Errorf("listar workflows activos: %w", err)
	}
	now := time.Now()
	for _, wf := range workflows {
		days, ok := ParseInactivityCriteria(wf.TriggerCriteria)
		if !ok {
			continue
		}
		before := now.AddDate(0, 0, -days)
		offset := 0
		for {
			batch, err := s.contacts.ListInactiveByTenant(ctx, wf.TenantID, before, inactivityBatchSize, offset)
			if err != nil {
				return fmt.Errorf("listar contactos inactivos del tenant %s: %w", wf.TenantID, err)
			}
			for _, contact := range batch {
				s.enqueueExecution(ctx, wf, contact)
			}
			if len(batch) < inactivityBatchSize {
				break
			}
			offset += inactivityBatchSize
		}
	}
	return nil
}

// ProcessKeywordTrigger resuelve un keyword entrante contra el tenant del
// contacto: registra la actividad (siempre, sin idempotencia), inscribe al
// contacto en el grupo de opt-in del keyword (idempotente) y encola un
// TriggerEvent(KeywordReceived) asíncrono.
func (s *TriggerService) ProcessKeywordTrigger(ctx context.Context, keywordText, contactID string) error {
	contact, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		return fmt.Errorf("buscar contacto %s: %w", contactID, err)
	}
	if contact == nil {
		s.log.Warn().Str("contact_id", contactID).Str("keyword", keywordText).
			Msg("keyword para contacto inexistente, se ignora")
		return nil
	}

	keyword, err := s.keywords.GetActiveByTenantAndText(ctx, contact.TenantID, keywordText)
	if err != nil {
		return fmt.Errorf("buscar keyword: %w", err)
	}
	if keyword == nil {
		s.log.Info().Str("tenant_id", contact.TenantID).Str("keyword", keywordText).
			Msg("keyword sin definición activa en el tenant")
		return nil
	}

	activity := &entity.KeywordActivity{
		ID:              uuid.New().String(),
		KeywordID:       keyword.ID,
		Phone:           contact.Phone,
		IncomingMessage: keywordText,
		ResponseMessage: keyword.ResponseMessage,
		ReceivedAt:      time.Now(),
	}
	if err := s.activities.Append(ctx, activity); err != nil {
		return fmt.Errorf("registrar actividad de keyword: %w", err)
	}

	if keyword.OptInGroupID != nil {
		if err := s.enrollInGroup(ctx, contact.ID, *keyword.OptInGroupID); err != nil {
			return err
		}
	}

	job := Job{
		Type:      JobTriggerEvent,
		TenantID:  contact.TenantID,
		ContactID: contact.ID,
		EventType: entity.EventKeywordReceived,
		EventData: map[string]string{
			DataKeyKeyword: keyword.Text,
			"keywordId":    keyword.ID,
		},
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		s.log.Error().Err(err).Str("keyword_id", keyword.ID).
			Msg("no se pudo encolar el evento KeywordReceived")
	}
	return nil
}

// RegisterCustomEvent sella eventData con el nombre del evento y lo despacha
// como evento Custom.
func (s *TriggerService) RegisterCustomEvent(ctx context.Context, eventName, contactID string, eventData map[string]string) error {
	data := make(map[string]string, len(eventData)+1)
	for k, v := range eventData {
		data[k] = v
	}
	data["customEventName"] = eventName
	return s.TriggerEvent(ctx, entity.EventCustom, contactID, data)
}

// enrollInGroup inserta la membresía (contacto, grupo) solo si no existe una
// fila viva. El check-then-insert no es atómico: dos entregas concurrentes
// del mismo keyword pueden duplicar la fila; la membresía no se usa como
// clave de negocio aguas abajo.
func (s *TriggerService) enrollInGroup(ctx context.Context, contactID, groupID string) error {
	existing, err := s.groups.GetLiveMember(ctx, contactID, groupID)
	if err != nil {
		return fmt.Errorf("buscar membresía: %w", err)
	}
	if existing != nil {
		return nil
	}
	member := &entity.GroupMember{
		ID:        uuid.New().String(),
		ContactID: contactID,
		GroupID:   groupID,
		CreatedAt: time.Now(),
	}
	if err := s.groups.AddMember(ctx, member); err != nil {
		return fmt.Errorf("inscribir contacto en grupo: %w", err)
	}
	return nil
}

func (s *TriggerService) enqueueExecution(ctx context.Context, wf *entity.Workflow, contact *entity.Contact) {
	job := Job{
		Type:       JobWorkflowExecution,
		TenantID:   wf.TenantID,
		WorkflowID: wf.ID,
		ContactID:  contact.ID,
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		s.log.Error().Err(err).Str("workflow_id", wf.ID).Str("contact_id", contact.ID).
			Msg("no se pudo encolar la ejecución del workflow")
		return
	}
	s.log.Debug().Str("workflow_id", wf.ID).Str("contact_id", contact.ID).
		Msg("ejecución de workflow encolada")
}
