package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/application/webhook"
)

// HeaderWebhookSignature cabecera con la firma HMAC del proveedor.
const HeaderWebhookSignature = "X-Webhook-Signature"

// WebhookHandler recibe callbacks del proveedor de mensajería.
// Siempre responde 200 al proveedor, incluso ante una falla interna: un
// error nuestro no debe disparar los reintentos del proveedor. El ack
// lleva received=false cuando el procesamiento falló.
type WebhookHandler struct {
	svc    *webhook.Service
	secret string
}

// NewWebhookHandler construye el handler. Si secret es vacío no se
// valida la firma (entornos de desarrollo).
func NewWebhookHandler(svc *webhook.Service, secret string) *WebhookHandler {
	return &WebhookHandler{svc: svc, secret: secret}
}

// verify valida la firma HMAC del cuerpo crudo si hay secreto configurado.
func (h *WebhookHandler) verify(c *fiber.Ctx) bool {
	if h.secret == "" {
		return true
	}
	return webhook.ValidateSignature(c.Get(HeaderWebhookSignature), c.Body(), h.secret)
}

// Inbound POST /api/webhooks/inbound
func (h *WebhookHandler) Inbound(c *fiber.Ctx) error {
	if !h.verify(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}
	var in dto.InboundMessageWebhook
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	// Una falla interna ya quedó logueada en el servicio; al proveedor se le
	// responde 200 igual para no provocar tormentas de reintentos.
	return c.JSON(dto.WebhookAck{Received: h.svc.ProcessInboundMessage(c.Context(), in.From, in.To, in.Body)})
}

// DeliveryStatus POST /api/webhooks/status
func (h *WebhookHandler) DeliveryStatus(c *fiber.Ctx) error {
	if !h.verify(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}
	var in dto.DeliveryStatusWebhook
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(dto.WebhookAck{Received: h.svc.ProcessDeliveryStatus(c.Context(), in.MessageID, in.Status, in.ErrorMessage)})
}

// OptOut POST /api/webhooks/optout
func (h *WebhookHandler) OptOut(c *fiber.Ctx) error {
	if !h.verify(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}
	var in dto.OptOutWebhook
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(dto.WebhookAck{Received: h.svc.ProcessOptOut(c.Context(), in.Identifier, in.Source)})
}
