package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mercadeo-api/internal/application/webhook"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Mercadeo-api/internal/interfaces/http"
	"github.com/jhoicas/Mercadeo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos: solo los puertos que toca la ruta bajo prueba
// ──────────────────────────────────────────────────────────────────────────────

// emptyNumbers simula un pool sin el número de destino.
type emptyNumbers struct{}

func (emptyNumbers) Create(context.Context, *entity.PhoneNumber) error { return nil }
func (emptyNumbers) GetByID(context.Context, string) (*entity.PhoneNumber, error) {
	return nil, nil
}
func (emptyNumbers) GetByNumber(context.Context, string) (*entity.PhoneNumber, error) {
	return nil, nil
}
func (emptyNumbers) Update(context.Context, *entity.PhoneNumber) error { return nil }
func (emptyNumbers) ListAvailable(context.Context, int, int) ([]*entity.PhoneNumber, error) {
	return nil, nil
}
func (emptyNumbers) ListByTenant(context.Context, string, int, int) ([]*entity.PhoneNumber, error) {
	return nil, nil
}

// emptyMessages simula que el mensaje del callback no existe localmente.
type emptyMessages struct{}

func (emptyMessages) Create(context.Context, *entity.Message) error { return nil }
func (emptyMessages) GetByID(context.Context, string) (*entity.Message, error) {
	return nil, nil
}
func (emptyMessages) GetByExternalID(context.Context, string) (*entity.Message, error) {
	return nil, nil
}
func (emptyMessages) Update(context.Context, *entity.Message) error { return nil }
func (emptyMessages) ListByCampaign(context.Context, string, int, int) ([]*entity.Message, error) {
	return nil, nil
}
func (emptyMessages) ListByTenant(context.Context, string, int, int) ([]*entity.Message, error) {
	return nil, nil
}

// failingNumbers simula la base de datos caída.
type failingNumbers struct {
	emptyNumbers
}

func (failingNumbers) GetByNumber(context.Context, string) (*entity.PhoneNumber, error) {
	return nil, errors.New("bd caída")
}

func buildWebhookApp(secret string) *fiber.App {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	// Las rutas bajo prueba (número desconocido, mensaje desconocido) no
	// llegan a tocar contactos, supresiones, tx ni triggers.
	svc := webhook.NewService(emptyNumbers{}, nil, emptyMessages{}, nil, nil, nil, nil, log)
	return buildWebhookAppWith(svc, secret)
}

func buildWebhookAppWith(svc *webhook.Service, secret string) *fiber.App {
	app := fiber.New()
	h := apphttp.NewWebhookHandler(svc, secret)
	app.Post("/api/webhooks/inbound", h.Inbound)
	app.Post("/api/webhooks/status", h.DeliveryStatus)
	return app
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postWebhook(t *testing.T, app *fiber.App, path string, body []byte, signature string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(apphttp.HeaderWebhookSignature, signature)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Sin secreto configurado no se exige firma (entornos de desarrollo).
func TestWebhook_SinSecreto_NoValidaFirma(t *testing.T) {
	app := buildWebhookApp("")
	body := []byte(`{"from":"+573001112233","to":"+573009998877","body":"HOLA"}`)

	resp := postWebhook(t, app, "/api/webhooks/inbound", body, "")
	defer resp.Body.Close()

	// Número desconocido es benigno: siempre 200 hacia el proveedor.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhook_FirmaValida_Retorna200(t *testing.T) {
	secret := "webhook-secret"
	app := buildWebhookApp(secret)
	body := []byte(`{"from":"+573001112233","to":"+573009998877","body":"HOLA"}`)

	resp := postWebhook(t, app, "/api/webhooks/inbound", body, signBody(secret, body))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhook_FirmaInvalida_Retorna401(t *testing.T) {
	app := buildWebhookApp("webhook-secret")
	body := []byte(`{"from":"+573001112233","to":"+573009998877","body":"HOLA"}`)

	resp := postWebhook(t, app, "/api/webhooks/inbound", body, "firma-incorrecta")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhook_SecretoConfiguradoSinFirma_Retorna401(t *testing.T) {
	app := buildWebhookApp("webhook-secret")
	body := []byte(`{"from":"+573001112233","to":"+573009998877","body":"HOLA"}`)

	resp := postWebhook(t, app, "/api/webhooks/inbound", body, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Callback de estado para un mensaje desconocido: benigno, 200 y ack.
func TestWebhook_EstadoMensajeDesconocido_Retorna200(t *testing.T) {
	app := buildWebhookApp("")
	body := []byte(`{"messageId":"prov-123","status":"delivered"}`)

	resp := postWebhook(t, app, "/api/webhooks/status", body, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Una falla interna del servicio tampoco se expone al proveedor: 200 con
// received=false, para no provocar tormentas de reintentos.
func TestWebhook_FallaInterna_Retorna200ConReceivedFalse(t *testing.T) {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	svc := webhook.NewService(failingNumbers{}, nil, emptyMessages{}, nil, nil, nil, nil, log)
	app := buildWebhookAppWith(svc, "")
	body := []byte(`{"from":"+573001112233","to":"+573009998877","body":"HOLA"}`)

	resp := postWebhook(t, app, "/api/webhooks/inbound", body, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"una falla interna no debe cambiar el 200 hacia el proveedor")

	var ack map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.False(t, ack["received"], "el ack debe marcar received=false ante falla interna")
}

func TestWebhook_CuerpoInvalido_Retorna400(t *testing.T) {
	app := buildWebhookApp("")

	resp := postWebhook(t, app, "/api/webhooks/inbound", []byte("no-es-json"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
