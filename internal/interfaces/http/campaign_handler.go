package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/application/usecase"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
)

// CampaignHandler maneja las peticiones HTTP de campañas y sus mensajes.
type CampaignHandler struct {
	uc *usecase.CampaignUseCase
}

// NewCampaignHandler construye el handler.
func NewCampaignHandler(uc *usecase.CampaignUseCase) *CampaignHandler {
	return &CampaignHandler{uc: uc}
}

// Create POST /api/campaigns
func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.CreateCampaignRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	campaign, err := h.uc.Create(c.Context(), tenantID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de campaña inválidos"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

// GetByID GET /api/campaigns/:id
func (h *CampaignHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	campaign, err := h.uc.GetByID(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if campaign == nil {
		return notFound(c)
	}
	return c.JSON(campaign)
}

// List GET /api/campaigns?limit=20&offset=0
func (h *CampaignHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.Context(), tenantID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Delete DELETE /api/campaigns/:id
func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), tenantID, c.Params("id")); err != nil {
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "no se puede eliminar una campaña en envío"})
		}
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Send POST /api/campaigns/:id/send
func (h *CampaignHandler) Send(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	result, err := h.uc.Send(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la campaña ya fue enviada o está en envío"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(result)
}

// ListMessages GET /api/campaigns/:id/messages?limit=20&offset=0
func (h *CampaignHandler) ListMessages(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	messages, err := h.uc.ListMessages(c.Context(), tenantID, c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": messages})
}
