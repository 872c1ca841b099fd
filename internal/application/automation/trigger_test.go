package automation_test

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mercadeo-api/internal/application/automation"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia y de la cola
// ──────────────────────────────────────────────────────────────────────────────

type memContacts struct {
	byID map[string]*entity.Contact
}

func (m *memContacts) Create(_ context.Context, c *entity.Contact) error { m.byID[c.ID] = c; return nil }
func (m *memContacts) GetByID(_ context.Context, id string) (*entity.Contact, error) {
	c, ok := m.byID[id]
	if !ok || c.Deleted {
		return nil, nil
	}
	return c, nil
}
func (m *memContacts) GetByPhoneAndTenant(_ context.Context, phone, tenantID string) (*entity.Contact, error) {
	for _, c := range m.byID {
		if !c.Deleted && c.Phone == phone && c.TenantID == tenantID {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memContacts) GetFirstByPhone(_ context.Context, phone string) (*entity.Contact, error) {
	for _, c := range m.byID {
		if !c.Deleted && c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memContacts) Update(_ context.Context, c *entity.Contact) error { m.byID[c.ID] = c; return nil }
func (m *memContacts) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Contact, error) {
	var out []*entity.Contact
	for _, c := range m.byID {
		if !c.Deleted && c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m *memContacts) ListInactiveByTenant(_ context.Context, tenantID string, before time.Time, limit, offset int) ([]*entity.Contact, error) {
	var all []*entity.Contact
	for _, c := range m.byID {
		if !c.Deleted && c.Active && c.TenantID == tenantID && c.UpdatedAt.Before(before) {
			all = append(all, c)
		}
	}
	// Orden estable para que la paginación del barrido sea consistente
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
func (m *memContacts) SoftDelete(_ context.Context, id string) error {
	if c, ok := m.byID[id]; ok {
		c.Deleted = true
	}
	return nil
}

type memWorkflows struct {
	rows []*entity.Workflow
}

func (m *memWorkflows) Create(_ context.Context, w *entity.Workflow) error {
	m.rows = append(m.rows, w)
	return nil
}
func (m *memWorkflows) GetByID(_ context.Context, id string) (*entity.Workflow, error) {
	for _, w := range m.rows {
		if w.ID == id && !w.Deleted {
			return w, nil
		}
	}
	return nil, nil
}
func (m *memWorkflows) Update(_ context.Context, w *entity.Workflow) error { return nil }
func (m *memWorkflows) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Workflow, error) {
	return nil, nil
}
func (m *memWorkflows) ListActiveByTenantAndType(_ context.Context, tenantID, triggerType string) ([]*entity.Workflow, error) {
	var out []*entity.Workflow
	for _, w := range m.rows {
		if w.TenantID == tenantID && w.TriggerType == triggerType && w.Active && !w.Deleted {
			out = append(out, w)
		}
	}
	return out, nil
}
func (m *memWorkflows) ListActiveByType(_ context.Context, triggerType string) ([]*entity.Workflow, error) {
	var out []*entity.Workflow
	for _, w := range m.rows {
		if w.TriggerType == triggerType && w.Active && !w.Deleted {
			out = append(out, w)
		}
	}
	return out, nil
}
func (m *memWorkflows) SoftDelete(_ context.Context, id string) error { return nil }

type memKeywords struct {
	rows []*entity.Keyword
}

func (m *memKeywords) Create(_ context.Context, k *entity.Keyword) error {
	m.rows = append(m.rows, k)
	return nil
}
func (m *memKeywords) GetByID(_ context.Context, id string) (*entity.Keyword, error) {
	for _, k := range m.rows {
		if k.ID == id && !k.Deleted {
			return k, nil
		}
	}
	return nil, nil
}
func (m *memKeywords) GetActiveByTenantAndText(_ context.Context, tenantID, text string) (*entity.Keyword, error) {
	for _, k := range m.rows {
		if k.TenantID == tenantID && !k.Deleted && k.Status == entity.KeywordStatusActive &&
			strings.EqualFold(k.Text, strings.TrimSpace(text)) {
			return k, nil
		}
	}
	return nil, nil
}
func (m *memKeywords) Update(_ context.Context, k *entity.Keyword) error { return nil }
func (m *memKeywords) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Keyword, error) {
	return nil, nil
}
func (m *memKeywords) SoftDelete(_ context.Context, id string) error { return nil }

type memActivities struct {
	rows []*entity.KeywordActivity
}

func (m *memActivities) Append(_ context.Context, a *entity.KeywordActivity) error {
	m.rows = append(m.rows, a)
	return nil
}
func (m *memActivities) ListByKeyword(_ context.Context, keywordID string, limit, offset int) ([]*entity.KeywordActivity, error) {
	return m.rows, nil
}

type memGroups struct {
	members []*entity.GroupMember
}

func (m *memGroups) Create(_ context.Context, g *entity.Group) error { return nil }
func (m *memGroups) Update(_ context.Context, g *entity.Group) error { return nil }
func (m *memGroups) GetByID(_ context.Context, id string) (*entity.Group, error) {
	return nil, nil
}
func (m *memGroups) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Group, error) {
	return nil, nil
}
func (m *memGroups) SoftDelete(_ context.Context, id string) error { return nil }
func (m *memGroups) GetLiveMember(_ context.Context, contactID, groupID string) (*entity.GroupMember, error) {
	for _, gm := range m.members {
		if gm.ContactID == contactID && gm.GroupID == groupID && !gm.Deleted {
			return gm, nil
		}
	}
	return nil, nil
}
func (m *memGroups) AddMember(_ context.Context, gm *entity.GroupMember) error {
	m.members = append(m.members, gm)
	return nil
}
func (m *memGroups) ListMembers(_ context.Context, groupID string, limit, offset int) ([]*entity.GroupMember, error) {
	return m.members, nil
}

// memQueue registra cada job encolado, en orden.
type memQueue struct {
	jobs []automation.Job
}

func (q *memQueue) Enqueue(_ context.Context, job automation.Job) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *memQueue) executionsFor(workflowID string) int {
	n := 0
	for _, j := range q.jobs {
		if j.Type == automation.JobWorkflowExecution && j.WorkflowID == workflowID {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del servicio bajo prueba
// ──────────────────────────────────────────────────────────────────────────────

type triggerFixture struct {
	contacts   *memContacts
	workflows  *memWorkflows
	keywords   *memKeywords
	activities *memActivities
	groups     *memGroups
	queue      *memQueue
	svc        *automation.TriggerService
}

func newTriggerFixture() *triggerFixture {
	f := &triggerFixture{
		contacts:   &memContacts{byID: map[string]*entity.Contact{}},
		workflows:  &memWorkflows{},
		keywords:   &memKeywords{},
		activities: &memActivities{},
		groups:     &memGroups{},
		queue:      &memQueue{},
	}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	f.svc = automation.NewTriggerService(f.contacts, f.workflows, f.keywords, f.activities, f.groups, f.queue, log)
	return f
}

func (f *triggerFixture) addContact(id, tenantID string, updatedAt time.Time) *entity.Contact {
	c := &entity.Contact{ID: id, TenantID: tenantID, Phone: "+57300000" + id, Active: true, UpdatedAt: updatedAt}
	f.contacts.byID[id] = c
	return c
}

func (f *triggerFixture) addWorkflow(id, tenantID, triggerType, criteria string) *entity.Workflow {
	w := &entity.Workflow{ID: id, TenantID: tenantID, TriggerType: triggerType, TriggerCriteria: criteria, Active: true}
	f.workflows.rows = append(f.workflows.rows, w)
	return w
}

// ──────────────────────────────────────────────────────────────────────────────
// TriggerEvent
// ──────────────────────────────────────────────────────────────────────────────

// Invariante de aislamiento: el tenant A posee el contacto 42 y el workflow 7;
// el tenant B posee el workflow 9 con criterio idéntico. El evento debe
// encolar el 7 y JAMÁS el 9.
func TestTriggerEvent_AislamientoPorTenant(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())
	f.addWorkflow("7", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"MessageDelivered"}`)
	f.addWorkflow("9", "tenant-b", entity.TriggerTypeEvent, `{"eventType":"MessageDelivered"}`)

	err := f.svc.TriggerEvent(context.Background(), entity.EventMessageDelivered, "42", map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 1, f.queue.executionsFor("7"), "el workflow del tenant dueño debe encolarse")
	assert.Equal(t, 0, f.queue.executionsFor("9"), "un workflow de otro tenant no debe evaluarse nunca")
}

func TestTriggerEvent_ContactoInexistente_EsNoOp(t *testing.T) {
	f := newTriggerFixture()
	f.addWorkflow("7", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"MessageDelivered"}`)

	err := f.svc.TriggerEvent(context.Background(), entity.EventMessageDelivered, "no-existe", nil)
	require.NoError(t, err, "contacto ausente es no-op registrado, no error")
	assert.Empty(t, f.queue.jobs)
}

func TestTriggerEvent_ContactoBorrado_EsNoOp(t *testing.T) {
	f := newTriggerFixture()
	c := f.addContact("42", "tenant-a", time.Now())
	c.Deleted = true
	f.addWorkflow("7", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"MessageDelivered"}`)

	require.NoError(t, f.svc.TriggerEvent(context.Background(), entity.EventMessageDelivered, "42", nil))
	assert.Empty(t, f.queue.jobs)
}

func TestTriggerEvent_SinMatches_EsSilencioso(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())
	f.addWorkflow("7", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"MessageFailed"}`)

	require.NoError(t, f.svc.TriggerEvent(context.Background(), entity.EventMessageDelivered, "42", nil))
	assert.Empty(t, f.queue.jobs, "cero matches es un resultado normal")
}

func TestTriggerEvent_WorkflowInactivoOBorrado_NoSeEvalua(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())
	inactive := f.addWorkflow("7", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"MessageDelivered"}`)
	inactive.Active = false
	deleted := f.addWorkflow("8", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"MessageDelivered"}`)
	deleted.Deleted = true

	require.NoError(t, f.svc.TriggerEvent(context.Background(), entity.EventMessageDelivered, "42", nil))
	assert.Empty(t, f.queue.jobs)
}

// Sin deduplicación: dos llamadas idénticas producen dos ejecuciones.
func TestTriggerEvent_SinDeduplicacion(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())
	f.addWorkflow("7", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"MessageDelivered"}`)

	ctx := context.Background()
	require.NoError(t, f.svc.TriggerEvent(ctx, entity.EventMessageDelivered, "42", nil))
	require.NoError(t, f.svc.TriggerEvent(ctx, entity.EventMessageDelivered, "42", nil))

	assert.Equal(t, 2, f.queue.executionsFor("7"), "at-least-once: el resolver no deduplica")
}

// Con KeywordReceived y keyword no vacío entra la segunda ronda de candidatos
// (workflows de tipo keyword).
func TestTriggerEvent_RondaDeKeywords(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())
	f.addWorkflow("kw-1", "tenant-a", entity.TriggerTypeKeyword, `{"keyword":"promo"}`)
	f.addWorkflow("kw-2", "tenant-a", entity.TriggerTypeKeyword, `{"keywords":["vip","oferta"]}`)
	f.addWorkflow("kw-b", "tenant-b", entity.TriggerTypeKeyword, `{"keyword":"promo"}`)

	ctx := context.Background()
	data := map[string]string{automation.DataKeyKeyword: "PROMO"}
	require.NoError(t, f.svc.TriggerEvent(ctx, entity.EventKeywordReceived, "42", data))

	assert.Equal(t, 1, f.queue.executionsFor("kw-1"))
	assert.Equal(t, 0, f.queue.executionsFor("kw-2"))
	assert.Equal(t, 0, f.queue.executionsFor("kw-b"), "aislamiento por tenant también en la ronda de keywords")

	// Evento que no es KeywordReceived no abre la ronda de keywords
	f.queue.jobs = nil
	require.NoError(t, f.svc.TriggerEvent(ctx, entity.EventMessageDelivered, "42", data))
	assert.Empty(t, f.queue.jobs)

	// KeywordReceived sin keyword en eventData tampoco
	require.NoError(t, f.svc.TriggerEvent(ctx, entity.EventKeywordReceived, "42", map[string]string{}))
	assert.Empty(t, f.queue.jobs)
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckInactivityTriggers
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckInactivityTriggers_EncolaPorContactoInactivo(t *testing.T) {
	f := newTriggerFixture()
	old := time.Now().AddDate(0, 0, -45)
	fresh := time.Now().AddDate(0, 0, -2)
	f.addContact("c1", "tenant-a", old)
	f.addContact("c2", "tenant-a", fresh)
	f.addContact("c3", "tenant-b", old) // otro tenant: el workflow de A no lo alcanza
	f.addWorkflow("w-inact", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"Inactivity","inactiveDays":30}`)

	require.NoError(t, f.svc.CheckInactivityTriggers(context.Background()))

	assert.Equal(t, 1, f.queue.executionsFor("w-inact"))
	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, "c1", f.queue.jobs[0].ContactID,
		"solo el contacto inactivo del tenant dueño del workflow")
}

func TestCheckInactivityTriggers_RecorreLotesCompletos(t *testing.T) {
	f := newTriggerFixture()
	old := time.Now().AddDate(0, 0, -90)
	// 250 contactos inactivos: el barrido pagina de a 100 sin perder ninguno
	for i := 0; i < 250; i++ {
		f.addContact("c-"+strconv.Itoa(i), "tenant-a", old)
	}
	f.addWorkflow("w-inact", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"Inactivity","inactiveDays":30}`)

	require.NoError(t, f.svc.CheckInactivityTriggers(context.Background()))
	assert.Equal(t, 250, f.queue.executionsFor("w-inact"),
		"el batching acota memoria pero no cambia el resultado")
}

func TestCheckInactivityTriggers_IgnoraCriteriosNoInactividad(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("c1", "tenant-a", time.Now().AddDate(0, 0, -90))
	f.addWorkflow("w-ev", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"MessageDelivered"}`)

	require.NoError(t, f.svc.CheckInactivityTriggers(context.Background()))
	assert.Empty(t, f.queue.jobs)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessKeywordTrigger
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessKeywordTrigger_RegistraActividadYEncolaEvento(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())
	f.keywords.rows = append(f.keywords.rows, &entity.Keyword{
		ID: "kw-1", TenantID: "tenant-a", Text: "promo",
		Status: entity.KeywordStatusActive, ResponseMessage: "¡Gracias!",
	})

	require.NoError(t, f.svc.ProcessKeywordTrigger(context.Background(), "PROMO", "42"))

	require.Len(t, f.activities.rows, 1, "una fila de actividad por keyword recibido")
	assert.Equal(t, "kw-1", f.activities.rows[0].KeywordID)
	assert.Equal(t, "¡Gracias!", f.activities.rows[0].ResponseMessage)

	require.Len(t, f.queue.jobs, 1)
	job := f.queue.jobs[0]
	assert.Equal(t, automation.JobTriggerEvent, job.Type)
	assert.Equal(t, entity.EventKeywordReceived, job.EventType)
	assert.Equal(t, "promo", job.EventData[automation.DataKeyKeyword])
	assert.Equal(t, "kw-1", job.EventData["keywordId"])
}

func TestProcessKeywordTrigger_ActividadNoEsIdempotente(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())
	f.keywords.rows = append(f.keywords.rows, &entity.Keyword{
		ID: "kw-1", TenantID: "tenant-a", Text: "promo", Status: entity.KeywordStatusActive,
	})

	ctx := context.Background()
	require.NoError(t, f.svc.ProcessKeywordTrigger(ctx, "PROMO", "42"))
	require.NoError(t, f.svc.ProcessKeywordTrigger(ctx, "PROMO", "42"))

	assert.Len(t, f.activities.rows, 2, "cada llamada agrega su propia fila de bitácora")
}

func TestProcessKeywordTrigger_InscripcionEnGrupoEsIdempotente(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())
	groupID := "grupo-vip"
	f.keywords.rows = append(f.keywords.rows, &entity.Keyword{
		ID: "kw-1", TenantID: "tenant-a", Text: "vip",
		Status: entity.KeywordStatusActive, OptInGroupID: &groupID,
	})

	ctx := context.Background()
	require.NoError(t, f.svc.ProcessKeywordTrigger(ctx, "VIP", "42"))
	require.NoError(t, f.svc.ProcessKeywordTrigger(ctx, "VIP", "42"))

	live := 0
	for _, m := range f.groups.members {
		if !m.Deleted && m.ContactID == "42" && m.GroupID == groupID {
			live++
		}
	}
	assert.Equal(t, 1, live, "nunca dos membresías vivas para el mismo par (contacto, grupo)")
}

func TestProcessKeywordTrigger_KeywordSinDefinicion_EsNoOp(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())

	require.NoError(t, f.svc.ProcessKeywordTrigger(context.Background(), "NADA", "42"))
	assert.Empty(t, f.activities.rows)
	assert.Empty(t, f.queue.jobs)
}

func TestProcessKeywordTrigger_KeywordDeOtroTenant_NoAplica(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())
	f.keywords.rows = append(f.keywords.rows, &entity.Keyword{
		ID: "kw-b", TenantID: "tenant-b", Text: "promo", Status: entity.KeywordStatusActive,
	})

	require.NoError(t, f.svc.ProcessKeywordTrigger(context.Background(), "PROMO", "42"))
	assert.Empty(t, f.activities.rows, "el keyword de otro tenant es invisible")
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterCustomEvent
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterCustomEvent_SellaElNombreYDispara(t *testing.T) {
	f := newTriggerFixture()
	f.addContact("42", "tenant-a", time.Now())
	f.addWorkflow("w-c", "tenant-a", entity.TriggerTypeEvent, `{"eventType":"Custom"}`)

	err := f.svc.RegisterCustomEvent(context.Background(), "carrito_abandonado", "42", map[string]string{"total": "50000"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.queue.executionsFor("w-c"))
}
