package webhook_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mercadeo-api/internal/application/automation"
	"github.com/jhoicas/Mercadeo-api/internal/application/webhook"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
	"github.com/jhoicas/Mercadeo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memNumbers struct {
	rows []*entity.PhoneNumber
}

func (m *memNumbers) Create(_ context.Context, n *entity.PhoneNumber) error { return nil }
func (m *memNumbers) GetByID(_ context.Context, id string) (*entity.PhoneNumber, error) {
	return nil, nil
}
func (m *memNumbers) GetByNumber(_ context.Context, number string) (*entity.PhoneNumber, error) {
	for _, n := range m.rows {
		if n.Number == number && !n.Deleted {
			return n, nil
		}
	}
	return nil, nil
}
func (m *memNumbers) Update(_ context.Context, n *entity.PhoneNumber) error { return nil }
func (m *memNumbers) ListAvailable(_ context.Context, limit, offset int) ([]*entity.PhoneNumber, error) {
	return nil, nil
}
func (m *memNumbers) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.PhoneNumber, error) {
	return nil, nil
}

type memContacts struct {
	rows []*entity.Contact
}

func (m *memContacts) Create(_ context.Context, c *entity.Contact) error { return nil }
func (m *memContacts) GetByID(_ context.Context, id string) (*entity.Contact, error) {
	for _, c := range m.rows {
		if c.ID == id && !c.Deleted {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memContacts) GetByPhoneAndTenant(_ context.Context, phone, tenantID string) (*entity.Contact, error) {
	for _, c := range m.rows {
		if c.Phone == phone && c.TenantID == tenantID && !c.Deleted {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memContacts) GetFirstByPhone(_ context.Context, phone string) (*entity.Contact, error) {
	for _, c := range m.rows {
		if c.Phone == phone && !c.Deleted {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memContacts) Update(_ context.Context, c *entity.Contact) error {
	for i, row := range m.rows {
		if row.ID == c.ID {
			m.rows[i] = c
		}
	}
	return nil
}
func (m *memContacts) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Contact, error) {
	return nil, nil
}
func (m *memContacts) ListInactiveByTenant(_ context.Context, tenantID string, before time.Time, limit, offset int) ([]*entity.Contact, error) {
	return nil, nil
}
func (m *memContacts) SoftDelete(_ context.Context, id string) error { return nil }

type memMessages struct {
	rows []*entity.Message
}

func (m *memMessages) Create(_ context.Context, msg *entity.Message) error { return nil }
func (m *memMessages) GetByID(_ context.Context, id string) (*entity.Message, error) {
	return nil, nil
}
func (m *memMessages) GetByExternalID(_ context.Context, externalID string) (*entity.Message, error) {
	for _, msg := range m.rows {
		if msg.ExternalID == externalID {
			return msg, nil
		}
	}
	return nil, nil
}
func (m *memMessages) Update(_ context.Context, msg *entity.Message) error {
	for i, row := range m.rows {
		if row.ID == msg.ID {
			m.rows[i] = msg
		}
	}
	return nil
}
func (m *memMessages) ListByCampaign(_ context.Context, campaignID string, limit, offset int) ([]*entity.Message, error) {
	return nil, nil
}
func (m *memMessages) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Message, error) {
	return nil, nil
}

type memSuppressions struct {
	rows []*entity.Suppression
}

func (m *memSuppressions) Create(_ context.Context, s *entity.Suppression) error {
	m.rows = append(m.rows, s)
	return nil
}
func (m *memSuppressions) GetByID(_ context.Context, id string) (*entity.Suppression, error) {
	for _, s := range m.rows {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
func (m *memSuppressions) GetActiveByTenantAndIdentifier(_ context.Context, tenantID, identifier string) (*entity.Suppression, error) {
	for _, s := range m.rows {
		if s.TenantID == tenantID && s.Identifier == identifier {
			return s, nil
		}
	}
	return nil, nil
}
func (m *memSuppressions) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Suppression, error) {
	return m.rows, nil
}
func (m *memSuppressions) Delete(_ context.Context, id string) error { return nil }

// memTx pasa los mismos repos en memoria; no hay transacción real que simular.
type memTx struct {
	contacts     *memContacts
	suppressions *memSuppressions
}

func (t *memTx) Run(ctx context.Context, fn func(repository.ContactRepository, repository.SuppressionRepository) error) error {
	return fn(t.contacts, t.suppressions)
}

// triggerCall registra una llamada al motor de automatización.
type triggerCall struct {
	op        string // "event" | "keyword"
	eventType string
	keyword   string
	contactID string
	eventData map[string]string
}

type fakeTriggers struct {
	calls []triggerCall
	err   error
}

func (f *fakeTriggers) TriggerEvent(_ context.Context, eventType, contactID string, eventData map[string]string) error {
	f.calls = append(f.calls, triggerCall{op: "event", eventType: eventType, contactID: contactID, eventData: eventData})
	return f.err
}

func (f *fakeTriggers) ProcessKeywordTrigger(_ context.Context, keywordText, contactID string) error {
	f.calls = append(f.calls, triggerCall{op: "keyword", keyword: keywordText, contactID: contactID})
	return f.err
}

type webhookFixture struct {
	numbers      *memNumbers
	contacts     *memContacts
	messages     *memMessages
	suppressions *memSuppressions
	triggers     *fakeTriggers
	svc          *webhook.Service
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		numbers:      &memNumbers{},
		contacts:     &memContacts{},
		messages:     &memMessages{},
		suppressions: &memSuppressions{},
		triggers:     &fakeTriggers{},
	}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	tx := &memTx{contacts: f.contacts, suppressions: f.suppressions}
	f.svc = webhook.NewService(f.numbers, f.contacts, f.messages, f.suppressions, tx, f.triggers, nil, log)
	return f
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// ProcessInboundMessage
// ──────────────────────────────────────────────────────────────────────────────

// Un mensaje a un número sin asignar no es error: true y cero efectos.
func TestProcessInboundMessage_NumeroSinRuta_TrueSinEfectos(t *testing.T) {
	f := newWebhookFixture()

	ok := f.svc.ProcessInboundMessage(context.Background(), "+573001112233", "+571000000000", "STOP")

	assert.True(t, ok, "no encontrar ruta sigue siendo éxito hacia el proveedor")
	assert.Empty(t, f.triggers.calls)
	assert.Empty(t, f.suppressions.rows)
}

func TestProcessInboundMessage_NumeroSinTenant_TrueSinEfectos(t *testing.T) {
	f := newWebhookFixture()
	f.numbers.rows = append(f.numbers.rows, &entity.PhoneNumber{ID: "n1", Number: "+571000000000", TenantID: nil})

	ok := f.svc.ProcessInboundMessage(context.Background(), "+573001112233", "+571000000000", "HOLA")
	assert.True(t, ok)
	assert.Empty(t, f.triggers.calls)
}

// Escenario del cuerpo "STOP please": el keyword es el primer token en
// mayúsculas y llega tanto a TriggerEvent como a ProcessKeywordTrigger.
func TestProcessInboundMessage_ExtraeKeywordYDisparaAmbos(t *testing.T) {
	f := newWebhookFixture()
	f.numbers.rows = append(f.numbers.rows, &entity.PhoneNumber{ID: "n1", Number: "+571000000000", TenantID: strPtr("tenant-a")})
	f.contacts.rows = append(f.contacts.rows, &entity.Contact{ID: "42", TenantID: "tenant-a", Phone: "+573001112233", SMSOptIn: true})

	ok := f.svc.ProcessInboundMessage(context.Background(), "+573001112233", "+571000000000", "STOP please")
	require.True(t, ok)

	require.Len(t, f.triggers.calls, 2)
	ev := f.triggers.calls[0]
	assert.Equal(t, "event", ev.op)
	assert.Equal(t, entity.EventKeywordReceived, ev.eventType)
	assert.Equal(t, "42", ev.contactID)
	assert.Equal(t, "STOP", ev.eventData[automation.DataKeyKeyword])
	assert.Equal(t, "STOP please", ev.eventData["fullMessage"])
	assert.Equal(t, "+573001112233", ev.eventData["from"])
	assert.Equal(t, "+571000000000", ev.eventData["to"])

	kw := f.triggers.calls[1]
	assert.Equal(t, "keyword", kw.op)
	assert.Equal(t, "STOP", kw.keyword)
	assert.Equal(t, "42", kw.contactID)
}

// Remitente sin contacto bajo el tenant del número: se detiene tras el
// pre-proceso, sin triggers, y sigue siendo true.
func TestProcessInboundMessage_RemitenteDesconocido_SinTriggers(t *testing.T) {
	f := newWebhookFixture()
	f.numbers.rows = append(f.numbers.rows, &entity.PhoneNumber{ID: "n1", Number: "+571000000000", TenantID: strPtr("tenant-a")})
	// El contacto existe pero en OTRO tenant: bajo este número no cuenta
	f.contacts.rows = append(f.contacts.rows, &entity.Contact{ID: "42", TenantID: "tenant-b", Phone: "+573001112233"})

	ok := f.svc.ProcessInboundMessage(context.Background(), "+573001112233", "+571000000000", "PROMO")
	assert.True(t, ok)
	assert.Empty(t, f.triggers.calls)
}

func TestProcessInboundMessage_FalloInterno_False(t *testing.T) {
	f := newWebhookFixture()
	f.numbers.rows = append(f.numbers.rows, &entity.PhoneNumber{ID: "n1", Number: "+571000000000", TenantID: strPtr("tenant-a")})
	f.contacts.rows = append(f.contacts.rows, &entity.Contact{ID: "42", TenantID: "tenant-a", Phone: "+573001112233"})
	f.triggers.err = errors.New("bd caída")

	ok := f.svc.ProcessInboundMessage(context.Background(), "+573001112233", "+571000000000", "PROMO")
	assert.False(t, ok, "solo una falla interna inesperada produce false")
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessDeliveryStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessDeliveryStatus_MapeoDeEstados(t *testing.T) {
	cases := []struct {
		provider string
		want     string
	}{
		{"queued", entity.MessageStatusQueued},
		{"accepted", entity.MessageStatusQueued},
		{"scheduled", entity.MessageStatusQueued},
		{"sending", entity.MessageStatusSending},
		{"sent", entity.MessageStatusSending},
		{"delivered", entity.MessageStatusDelivered},
		{"failed", entity.MessageStatusFailed},
		{"undelivered", entity.MessageStatusFailed},
		{"bounced", entity.MessageStatusFailed},
		{"Delivered", entity.MessageStatusDelivered},
		{"algo-raro", entity.MessageStatusQueued},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, webhook.MapProviderStatus(tc.provider), "estado %q", tc.provider)
	}
}

// Escenario: "bounced" pasa el mensaje a failed, sella FailedAt y dispara
// MessageFailed con el error en eventData.
func TestProcessDeliveryStatus_Bounced(t *testing.T) {
	f := newWebhookFixture()
	f.messages.rows = append(f.messages.rows, &entity.Message{
		ID: "m1", TenantID: "tenant-a", ContactID: "42", ExternalID: "SM123",
		Status: entity.MessageStatusSending,
	})

	ok := f.svc.ProcessDeliveryStatus(context.Background(), "SM123", "bounced", "número fuera de servicio")
	require.True(t, ok)

	msg := f.messages.rows[0]
	assert.Equal(t, entity.MessageStatusFailed, msg.Status)
	require.NotNil(t, msg.FailedAt)
	assert.Nil(t, msg.DeliveredAt)
	assert.Equal(t, "número fuera de servicio", msg.ErrorMessage)

	require.Len(t, f.triggers.calls, 1)
	call := f.triggers.calls[0]
	assert.Equal(t, entity.EventMessageFailed, call.eventType)
	assert.Equal(t, "42", call.contactID)
	assert.Equal(t, "m1", call.eventData["messageId"])
	assert.Equal(t, "número fuera de servicio", call.eventData["errorMessage"])
}

func TestProcessDeliveryStatus_Delivered(t *testing.T) {
	f := newWebhookFixture()
	f.messages.rows = append(f.messages.rows, &entity.Message{
		ID: "m1", TenantID: "tenant-a", ContactID: "42", ExternalID: "SM123",
		Status: entity.MessageStatusSending,
	})

	require.True(t, f.svc.ProcessDeliveryStatus(context.Background(), "SM123", "delivered", ""))

	msg := f.messages.rows[0]
	assert.Equal(t, entity.MessageStatusDelivered, msg.Status)
	require.NotNil(t, msg.DeliveredAt)
	require.Len(t, f.triggers.calls, 1)
	assert.Equal(t, entity.EventMessageDelivered, f.triggers.calls[0].eventType)
}

func TestProcessDeliveryStatus_MensajeDesconocido_TrueSinEfectos(t *testing.T) {
	f := newWebhookFixture()
	ok := f.svc.ProcessDeliveryStatus(context.Background(), "SM-nope", "delivered", "")
	assert.True(t, ok)
	assert.Empty(t, f.triggers.calls)
}

func TestProcessDeliveryStatus_SinContacto_NoDisparaEvento(t *testing.T) {
	f := newWebhookFixture()
	f.messages.rows = append(f.messages.rows, &entity.Message{
		ID: "m1", TenantID: "tenant-a", ExternalID: "SM123", Status: entity.MessageStatusSending,
	})

	require.True(t, f.svc.ProcessDeliveryStatus(context.Background(), "SM123", "delivered", ""))
	assert.Equal(t, entity.MessageStatusDelivered, f.messages.rows[0].Status)
	assert.Empty(t, f.triggers.calls, "propagación de estado pura, sin fan-out")
}

func TestProcessDeliveryStatus_EstadoIntermedio_NoDisparaEvento(t *testing.T) {
	f := newWebhookFixture()
	f.messages.rows = append(f.messages.rows, &entity.Message{
		ID: "m1", TenantID: "tenant-a", ContactID: "42", ExternalID: "SM123",
		Status: entity.MessageStatusQueued,
	})

	require.True(t, f.svc.ProcessDeliveryStatus(context.Background(), "SM123", "sent", ""))
	assert.Equal(t, entity.MessageStatusSending, f.messages.rows[0].Status)
	assert.Empty(t, f.triggers.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessOptOut
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessOptOut_InsertaSupresionYLimpiaFlags(t *testing.T) {
	f := newWebhookFixture()
	f.contacts.rows = append(f.contacts.rows, &entity.Contact{
		ID: "42", TenantID: "tenant-a", Phone: "+573001112233", SMSOptIn: true, EmailOptIn: true,
	})

	ok := f.svc.ProcessOptOut(context.Background(), "+573001112233", "webhook")
	require.True(t, ok)

	require.Len(t, f.suppressions.rows, 1)
	sup := f.suppressions.rows[0]
	assert.Equal(t, "tenant-a", sup.TenantID)
	assert.Equal(t, "+573001112233", sup.Identifier)
	assert.Equal(t, entity.SuppressionOptOut, sup.Type)
	assert.Equal(t, "webhook", sup.Source)

	c := f.contacts.rows[0]
	assert.False(t, c.SMSOptIn)
	assert.False(t, c.EmailOptIn)
}

func TestProcessOptOut_SupresionVigente_NoDuplica(t *testing.T) {
	f := newWebhookFixture()
	f.contacts.rows = append(f.contacts.rows, &entity.Contact{
		ID: "42", TenantID: "tenant-a", Phone: "+573001112233", SMSOptIn: true,
	})

	ctx := context.Background()
	require.True(t, f.svc.ProcessOptOut(ctx, "+573001112233", "webhook"))
	require.True(t, f.svc.ProcessOptOut(ctx, "+573001112233", "webhook"))

	assert.Len(t, f.suppressions.rows, 1, "a lo sumo una supresión vigente por (tenant, identificador)")
}

func TestProcessOptOut_ContactoDesconocido_TrueSinEfectos(t *testing.T) {
	f := newWebhookFixture()
	ok := f.svc.ProcessOptOut(context.Background(), "+579999999999", "webhook")
	assert.True(t, ok)
	assert.Empty(t, f.suppressions.rows)
}

// ──────────────────────────────────────────────────────────────────────────────
// StopWordProcessor
// ──────────────────────────────────────────────────────────────────────────────

func TestStopWordProcessor_RegistraOptOut(t *testing.T) {
	f := newWebhookFixture()
	f.contacts.rows = append(f.contacts.rows, &entity.Contact{
		ID: "42", TenantID: "tenant-a", Phone: "+573001112233", SMSOptIn: true,
	})
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	p := webhook.NewStopWordProcessor(f.svc, log)

	require.NoError(t, p.ProcessInbound(context.Background(), "tenant-a", "+573001112233", "baja ya no más"))
	assert.Len(t, f.suppressions.rows, 1, "la palabra BAJA registra el opt-out")

	require.NoError(t, p.ProcessInbound(context.Background(), "tenant-a", "+573001112233", "HOLA"))
	assert.Len(t, f.suppressions.rows, 1, "un cuerpo normal no toca supresiones")
}

// failingOptOuts simula que el registro del opt-out falla.
type failingOptOuts struct{ calls int }

func (f *failingOptOuts) ProcessOptOut(_ context.Context, _, _ string) bool {
	f.calls++
	return false
}

// Un opt-out que no se pudo persistir no debe frenar el ingest: el
// pre-procesador lo advierte y deja seguir el mensaje.
func TestStopWordProcessor_OptOutFallido_NoDetieneIngest(t *testing.T) {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	registrar := &failingOptOuts{}
	p := webhook.NewStopWordProcessor(registrar, log)

	require.NoError(t, p.ProcessInbound(context.Background(), "tenant-a", "+573001112233", "STOP"))
	assert.Equal(t, 1, registrar.calls, "el registro del opt-out debe intentarse")
}
