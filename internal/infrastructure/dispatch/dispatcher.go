package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercadeo-api/internal/application/automation"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
	"github.com/jhoicas/Mercadeo-api/pkg/logger"
)

// Dispatcher enruta los trabajos que el worker drena de la cola hacia el
// componente que los ejecuta. Un tipo desconocido es un error: el worker
// decide si hace Nack con requeue o descarta.
type Dispatcher struct {
	triggers *automation.TriggerService
	invoker  automation.WorkflowInvoker
	sender   *MessageSender
	log      *logger.Logger
}

// NewDispatcher construye el dispatcher.
func NewDispatcher(
	triggers *automation.TriggerService,
	invoker automation.WorkflowInvoker,
	sender *MessageSender,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{triggers: triggers, invoker: invoker, sender: sender, log: log}
}

// Handle ejecuta un trabajo según su tipo.
func (d *Dispatcher) Handle(ctx context.Context, job automation.Job) error {
	switch job.Type {
	case automation.JobTriggerEvent:
		return d.triggers.TriggerEvent(ctx, job.EventType, job.ContactID, job.EventData)
	case automation.JobWorkflowExecution:
		return d.invoker.Invoke(ctx, job.WorkflowID, job.ContactID)
	case automation.JobMessageSend:
		return d.sender.Send(ctx, job.MessageID)
	default:
		return fmt.Errorf("tipo de trabajo desconocido: %q", job.Type)
	}
}

// LogWorkflowInvoker es la implementación por defecto del puerto de
// ejecución de workflows: verifica que workflow y contacto sigan vivos y
// registra la ejecución. El motor de pasos del workflow vive en otro
// servicio; este invoker mantiene honesto el contrato de la cola.
type LogWorkflowInvoker struct {
	workflows repository.WorkflowRepository
	contacts  repository.ContactRepository
	log       *logger.Logger
}

var _ automation.WorkflowInvoker = (*LogWorkflowInvoker)(nil)

// NewLogWorkflowInvoker construye el invoker.
func NewLogWorkflowInvoker(
	workflows repository.WorkflowRepository,
	contacts repository.ContactRepository,
	log *logger.Logger,
) *LogWorkflowInvoker {
	return &LogWorkflowInvoker{workflows: workflows, contacts: contacts, log: log}
}

// Invoke valida y registra la ejecución. Workflow o contacto desaparecidos
// entre el encolado y el consumo no son un error: el trabajo se completa
// como no-op.
func (i *LogWorkflowInvoker) Invoke(ctx context.Context, workflowID, contactID string) error {
	wf, err := i.workflows.GetByID(ctx, workflowID)
	if err != nil {
		return err
	}
	if wf == nil || !wf.Active {
		i.log.Warn().Str("workflow_id", workflowID).
			Msg("workflow inexistente o inactivo al consumir, se descarta")
		return nil
	}
	contact, err := i.contacts.GetByID(ctx, contactID)
	if err != nil {
		return err
	}
	if contact == nil {
		i.log.Warn().Str("contact_id", contactID).
			Msg("contacto inexistente al consumir, se descarta")
		return nil
	}
	i.log.Info().
		Str("workflow_id", wf.ID).
		Str("workflow", wf.Name).
		Str("contact_id", contact.ID).
		Str("tenant_id", wf.TenantID).
		Msg("workflow ejecutado")
	return nil
}

// MessageSender despacha mensajes encolados por el envío de campañas al
// proveedor de mensajería y deja el mensaje en estado sending con el id
// del proveedor; el estado final llega después por webhook.
type MessageSender struct {
	messages repository.MessageRepository
	log      *logger.Logger
}

// NewMessageSender construye el sender.
func NewMessageSender(messages repository.MessageRepository, log *logger.Logger) *MessageSender {
	return &MessageSender{messages: messages, log: log}
}

// Send entrega un mensaje al proveedor. Mensaje inexistente o ya fuera del
// estado queued se descarta sin error (entrega at-least-once de la cola).
func (s *MessageSender) Send(ctx context.Context, messageID string) error {
	message, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		s.log.Warn().Str("message_id", messageID).Msg("mensaje inexistente al consumir, se descarta")
		return nil
	}
	if message.Status != entity.MessageStatusQueued {
		s.log.Warn().Str("message_id", messageID).Str("status", message.Status).
			Msg("mensaje ya despachado, entrega duplicada de la cola")
		return nil
	}

	// TODO: integrar el cliente HTTP real del proveedor; hoy se simula el
	// acuse con un id local y el delivery llega por el webhook de estado.
	message.Status = entity.MessageStatusSending
	message.ExternalID = uuid.NewString()
	message.UpdatedAt = time.Now()
	if err := s.messages.Update(ctx, message); err != nil {
		return err
	}
	s.log.Info().
		Str("message_id", message.ID).
		Str("external_id", message.ExternalID).
		Str("tenant_id", message.TenantID).
		Msg("mensaje entregado al proveedor")
	return nil
}
