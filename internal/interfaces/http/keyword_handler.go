package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/application/usecase"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
)

// KeywordHandler maneja las peticiones HTTP de keywords (protegido).
type KeywordHandler struct {
	uc *usecase.KeywordUseCase
}

// NewKeywordHandler construye el handler.
func NewKeywordHandler(uc *usecase.KeywordUseCase) *KeywordHandler {
	return &KeywordHandler{uc: uc}
}

// Create POST /api/keywords
func (h *KeywordHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.CreateKeywordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	keyword, err := h.uc.Create(c.Context(), tenantID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "text debe ser una sola palabra no vacía"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un keyword activo con ese texto"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(keyword)
}

// GetByID GET /api/keywords/:id
func (h *KeywordHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	keyword, err := h.uc.GetByID(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if keyword == nil {
		return notFound(c)
	}
	return c.JSON(keyword)
}

// Update PUT /api/keywords/:id
func (h *KeywordHandler) Update(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateKeywordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	keyword, err := h.uc.Update(c.Context(), tenantID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if keyword == nil {
		return notFound(c)
	}
	return c.JSON(keyword)
}

// List GET /api/keywords?limit=20&offset=0
func (h *KeywordHandler) List(c *fiber.Ctx) error {
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

// Delete DELETE /api/keywords/:id
func (h *KeywordHandler) Delete(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListActivity GET /api/keywords/:id/activity?limit=20&offset=0
func (h *KeywordHandler) ListActivity(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListActivity(c.Context(), tenantID, c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": list})
}
