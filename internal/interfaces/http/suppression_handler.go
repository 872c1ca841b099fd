package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/application/usecase"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
)

// SuppressionHandler maneja la lista de exclusión por tenant.
type SuppressionHandler struct {
	uc *usecase.SuppressionUseCase
}

// NewSuppressionHandler construye el handler.
func NewSuppressionHandler(uc *usecase.SuppressionUseCase) *SuppressionHandler {
	return &SuppressionHandler{uc: uc}
}

// Create POST /api/suppressions
func (h *SuppressionHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.CreateSuppressionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	suppression, err := h.uc.Create(c.Context(), tenantID, in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el identificador ya está suprimido"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(suppression)
}

// List GET /api/suppressions?limit=20&offset=0
func (h *SuppressionHandler) List(c *fiber.Ctx) error {
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

// Delete DELETE /api/suppressions/:id
func (h *SuppressionHandler) Delete(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
