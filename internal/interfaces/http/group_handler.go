package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/application/usecase"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
)

// GroupHandler maneja las peticiones HTTP de grupos y su membresía (protegido).
type GroupHandler struct {
	uc *usecase.GroupUseCase
}

// NewGroupHandler construye el handler.
func NewGroupHandler(uc *usecase.GroupUseCase) *GroupHandler {
	return &GroupHandler{uc: uc}
}

// Create POST /api/groups
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.CreateGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	group, err := h.uc.Create(c.Context(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetByID GET /api/groups/:id
func (h *GroupHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	group, err := h.uc.GetByID(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if group == nil {
		return notFound(c)
	}
	return c.JSON(group)
}

// Update PUT /api/groups/:id
func (h *GroupHandler) Update(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	group, err := h.uc.Update(c.Context(), tenantID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if group == nil {
		return notFound(c)
	}
	return c.JSON(group)
}

// List GET /api/groups?limit=20&offset=0
func (h *GroupHandler) List(c *fiber.Ctx) error {
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

// Delete DELETE /api/groups/:id
func (h *GroupHandler) Delete(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddMember POST /api/groups/:id/members
func (h *GroupHandler) AddMember(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.AddGroupMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	member, err := h.uc.AddMember(c.Context(), tenantID, c.Params("id"), in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el contacto ya es miembro del grupo"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// ListMembers GET /api/groups/:id/members?limit=20&offset=0
func (h *GroupHandler) ListMembers(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListMembers(c.Context(), tenantID, c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
