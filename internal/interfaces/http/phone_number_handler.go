package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/application/usecase"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
)

// PhoneNumberHandler maneja las peticiones HTTP del pool de números.
// Provision es solo para administradores de la plataforma.
type PhoneNumberHandler struct {
	uc *usecase.PhoneNumberUseCase
}

// NewPhoneNumberHandler construye el handler.
func NewPhoneNumberHandler(uc *usecase.PhoneNumberUseCase) *PhoneNumberHandler {
	return &PhoneNumberHandler{uc: uc}
}

// Provision POST /api/numbers (admin)
func (h *PhoneNumberHandler) Provision(c *fiber.Ctx) error {
	var in dto.ProvisionNumberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Number == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "number es requerido"})
	}
	number, err := h.uc.Provision(c.Context(), in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el número ya está aprovisionado"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(number)
}

// Assign POST /api/numbers/:id/assign
func (h *PhoneNumberHandler) Assign(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	number, err := h.uc.Assign(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(number)
}

// Release POST /api/numbers/:id/release
func (h *PhoneNumberHandler) Release(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Release(c.Context(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAvailable GET /api/numbers/available?limit=20&offset=0
func (h *PhoneNumberHandler) ListAvailable(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListAvailable(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListMine GET /api/numbers?limit=20&offset=0
func (h *PhoneNumberHandler) ListMine(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListByTenant(c.Context(), tenantID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
