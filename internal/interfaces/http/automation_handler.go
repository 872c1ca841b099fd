package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/application/usecase"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
)

// AutomationHandler expone disparadores manuales del motor de automatización.
type AutomationHandler struct {
	uc *usecase.AutomationUseCase
}

// NewAutomationHandler construye el handler.
func NewAutomationHandler(uc *usecase.AutomationUseCase) *AutomationHandler {
	return &AutomationHandler{uc: uc}
}

// TriggerCustomEvent POST /api/automation/events
func (h *AutomationHandler) TriggerCustomEvent(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.TriggerCustomEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.TriggerCustomEvent(c.Context(), tenantID, in); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contacto no encontrado"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"accepted": true})
}

// RunInactivitySweep POST /api/admin/automation/inactivity-sweep (admin)
//
// Pensado para invocarse desde un cron externo.
func (h *AutomationHandler) RunInactivitySweep(c *fiber.Ctx) error {
	if err := h.uc.RunInactivitySweep(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"accepted": true})
}
