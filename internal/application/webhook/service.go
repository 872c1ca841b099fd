package webhook

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercadeo-api/internal/application/automation"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
	"github.com/jhoicas/Mercadeo-api/pkg/logger"
)

// Service traduce callbacks del proveedor (mensaje entrante, estado de
// entrega, opt-out) a las operaciones tenant-scoped del motor de
// automatización. Todas las operaciones devuelven bool: false solo ante una
// falla interna inesperada. "No encontrado" es un resultado benigno que se
// registra y devuelve true, para que el endpoint responda siempre 200 al
// proveedor y no provoque tormentas de reintentos.
type Service struct {
	numbers      repository.PhoneNumberRepository
	contacts     repository.ContactRepository
	messages     repository.MessageRepository
	suppressions repository.SuppressionRepository
	tx           TxRunner
	triggers     TriggerDispatcher
	channel      ChannelProcessor
	log          *logger.Logger
}

// NewService construye el adaptador. channel puede ser nil (sin pre-proceso);
// ver SetChannelProcessor para el cableado con StopWordProcessor.
func NewService(
	numbers repository.PhoneNumberRepository,
	contacts repository.ContactRepository,
	messages repository.MessageRepository,
	suppressions repository.SuppressionRepository,
	tx TxRunner,
	triggers TriggerDispatcher,
	channel ChannelProcessor,
	log *logger.Logger,
) *Service {
	return &Service{
		numbers:      numbers,
		contacts:     contacts,
		messages:     messages,
		suppressions: suppressions,
		tx:           tx,
		triggers:     triggers,
		channel:      channel,
		log:          log,
	}
}

// SetChannelProcessor instala el pre-procesador de canal. Existe aparte del
// constructor porque el StopWordProcessor necesita a su vez el servicio para
// registrar opt-outs.
func (s *Service) SetChannelProcessor(channel ChannelProcessor) {
	s.channel = channel
}

// ProcessInboundMessage procesa un mensaje entrante del proveedor.
// El tenant se resuelve por el número de destino; un mensaje a un número sin
// asignar no es un error: se registra y se devuelve true sin efectos.
func (s *Service) ProcessInboundMessage(ctx context.Context, from, to, body string) bool {
	number, err := s.numbers.GetByNumber(ctx, to)
	if err != nil {
		s.log.Error().Err(err).Str("to", to).Msg("buscar número de destino")
		return false
	}
	if number == nil || number.TenantID == nil {
		s.log.Warn().Str("to", to).Msg("mensaje entrante a número sin tenant asignado, se descarta")
		return true
	}
	tenantID := *number.TenantID

	if s.channel != nil {
		if err := s.channel.ProcessInbound(ctx, tenantID, from, body); err != nil {
			// El pre-proceso de canal no detiene el ingest
			s.log.Error().Err(err).Str("tenant_id", tenantID).Msg("pre-proceso de canal")
		}
	}

	contact, err := s.contacts.GetByPhoneAndTenant(ctx, from, tenantID)
	if err != nil {
		s.log.Error().Err(err).Str("from", from).Msg("buscar contacto del remitente")
		return false
	}
	if contact == nil {
		s.log.Info().Str("from", from).Str("tenant_id", tenantID).
			Msg("mensaje de un teléfono sin contacto en el tenant, sin triggers")
		return true
	}

	keyword := firstToken(body)
	eventData := map[string]string{
		automation.DataKeyKeyword: keyword,
		"fullMessage":             body,
		"from":                    from,
		"to":                      to,
	}
	// Ambas llamadas re-verifican el tenant del contacto por su cuenta;
	// el adaptador no toma atajos de confianza.
	if err := s.triggers.TriggerEvent(ctx, entity.EventKeywordReceived, contact.ID, eventData); err != nil {
		s.log.Error().Err(err).Str("contact_id", contact.ID).Msg("disparar evento KeywordReceived")
		return false
	}
	if err := s.triggers.ProcessKeywordTrigger(ctx, keyword, contact.ID); err != nil {
		s.log.Error().Err(err).Str("contact_id", contact.ID).Msg("procesar keyword entrante")
		return false
	}
	return true
}

// ProcessDeliveryStatus propaga un callback de estado del proveedor al
// mensaje local y emite el evento MessageDelivered/MessageFailed si el
// mensaje tiene contacto. Nunca crea contactos ni números.
func (s *Service) ProcessDeliveryStatus(ctx context.Context, externalID, providerStatus, errorMessage string) bool {
	message, err := s.messages.GetByExternalID(ctx, externalID)
	if err != nil {
		s.log.Error().Err(err).Str("external_id", externalID).Msg("buscar mensaje por id del proveedor")
		return false
	}
	if message == nil {
		s.log.Warn().Str("external_id", externalID).Str("status", providerStatus).
			Msg("callback de estado para mensaje desconocido, se ignora")
		return true
	}

	now := time.Now()
	status := MapProviderStatus(providerStatus)
	message.Status = status
	message.UpdatedAt = now
	switch status {
	case entity.MessageStatusDelivered:
		message.DeliveredAt = &now
	case entity.MessageStatusFailed:
		message.FailedAt = &now
		message.ErrorMessage = errorMessage
	}
	if err := s.messages.Update(ctx, message); err != nil {
		s.log.Error().Err(err).Str("message_id", message.ID).Msg("actualizar estado del mensaje")
		return false
	}

	if message.ContactID == "" {
		return true
	}
	var eventType string
	switch status {
	case entity.MessageStatusDelivered:
		eventType = entity.EventMessageDelivered
	case entity.MessageStatusFailed:
		eventType = entity.EventMessageFailed
	default:
		return true
	}
	eventData := map[string]string{"messageId": message.ID}
	if status == entity.MessageStatusFailed && errorMessage != "" {
		eventData["errorMessage"] = errorMessage
	}
	if err := s.triggers.TriggerEvent(ctx, eventType, message.ContactID, eventData); err != nil {
		s.log.Error().Err(err).Str("message_id", message.ID).Msg("disparar evento de estado")
		return false
	}
	return true
}

// ProcessOptOut registra la baja de un teléfono o email: inserta la supresión
// del tenant del contacto (si no existe una vigente) y limpia sus flags de
// opt-in, ambas cosas en la misma transacción.
func (s *Service) ProcessOptOut(ctx context.Context, phoneOrEmail, source string) bool {
	// Búsqueda por teléfono sin filtro de tenant (primer match): se conserva
	// el comportamiento del canal entrante, que no conoce el tenant aún.
	contact, err := s.contacts.GetFirstByPhone(ctx, phoneOrEmail)
	if err != nil {
		s.log.Error().Err(err).Str("identifier", phoneOrEmail).Msg("buscar contacto para opt-out")
		return false
	}
	if contact == nil {
		s.log.Warn().Str("identifier", phoneOrEmail).Msg("opt-out de un identificador sin contacto, se ignora")
		return true
	}

	existing, err := s.suppressions.GetActiveByTenantAndIdentifier(ctx, contact.TenantID, phoneOrEmail)
	if err != nil {
		s.log.Error().Err(err).Str("identifier", phoneOrEmail).Msg("buscar supresión vigente")
		return false
	}
	if existing != nil {
		s.log.Debug().Str("identifier", phoneOrEmail).Str("tenant_id", contact.TenantID).
			Msg("supresión ya vigente, no se duplica")
		return true
	}

	err = s.tx.Run(ctx, func(contacts repository.ContactRepository, suppressions repository.SuppressionRepository) error {
		suppression := &entity.Suppression{
			ID:         uuid.New().String(),
			TenantID:   contact.TenantID,
			Identifier: phoneOrEmail,
			Type:       entity.SuppressionOptOut,
			Reason:     "opt-out del destinatario",
			Source:     source,
			CreatedAt:  time.Now(),
		}
		if err := suppressions.Create(ctx, suppression); err != nil {
			return err
		}
		contact.SMSOptIn = false
		contact.EmailOptIn = false
		contact.UpdatedAt = time.Now()
		return contacts.Update(ctx, contact)
	})
	if err != nil {
		s.log.Error().Err(err).Str("identifier", phoneOrEmail).Msg("registrar opt-out")
		return false
	}
	return true
}

// MapProviderStatus traduce el estado textual del proveedor al estado interno.
// Cualquier valor desconocido cae en queued.
func MapProviderStatus(providerStatus string) string {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "queued", "accepted", "scheduled":
		return entity.MessageStatusQueued
	case "sending", "sent":
		return entity.MessageStatusSending
	case "delivered":
		return entity.MessageStatusDelivered
	case "failed", "undelivered", "bounced":
		return entity.MessageStatusFailed
	default:
		return entity.MessageStatusQueued
	}
}

// firstToken devuelve el primer token delimitado por espacios, en mayúsculas.
func firstToken(body string) string {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
