package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/application/usecase"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
)

// WorkflowHandler maneja las peticiones HTTP de workflows (protegido).
type WorkflowHandler struct {
	uc *usecase.WorkflowUseCase
}

// NewWorkflowHandler construye el handler.
func NewWorkflowHandler(uc *usecase.WorkflowUseCase) *WorkflowHandler {
	return &WorkflowHandler{uc: uc}
}

// Create POST /api/workflows
func (h *WorkflowHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.CreateWorkflowRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	workflow, err := h.uc.Create(c.Context(), tenantID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "trigger_type o trigger_criteria inválidos"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(workflow)
}

// GetByID GET /api/workflows/:id
func (h *WorkflowHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	workflow, err := h.uc.GetByID(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if workflow == nil {
		return notFound(c)
	}
	return c.JSON(workflow)
}

// Update PUT /api/workflows/:id
func (h *WorkflowHandler) Update(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateWorkflowRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	workflow, err := h.uc.Update(c.Context(), tenantID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if workflow == nil {
		return notFound(c)
	}
	return c.JSON(workflow)
}

// List GET /api/workflows?limit=20&offset=0
func (h *WorkflowHandler) List(c *fiber.Ctx) error {
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

// Delete DELETE /api/workflows/:id
func (h *WorkflowHandler) Delete(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
