package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/application/usecase"
)

// LandingHandler maneja el contenido público del sitio y su CMS.
// La edición es solo para administradores; el contenido público no requiere token.
type LandingHandler struct {
	uc *usecase.LandingUseCase
}

// NewLandingHandler construye el handler.
func NewLandingHandler(uc *usecase.LandingUseCase) *LandingHandler {
	return &LandingHandler{uc: uc}
}

// PublicContent GET /api/landing
func (h *LandingHandler) PublicContent(c *fiber.Ctx) error {
	content, err := h.uc.PublicContent(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(content)
}

// CreateTestimonial POST /api/admin/testimonials
func (h *LandingHandler) CreateTestimonial(c *fiber.Ctx) error {
	var in dto.CreateTestimonialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	testimonial, err := h.uc.CreateTestimonial(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(testimonial)
}

// UpdateTestimonial PUT /api/admin/testimonials/:id
func (h *LandingHandler) UpdateTestimonial(c *fiber.Ctx) error {
	var in dto.UpdateTestimonialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	testimonial, err := h.uc.UpdateTestimonial(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if testimonial == nil {
		return notFound(c)
	}
	return c.JSON(testimonial)
}

// ListTestimonials GET /api/admin/testimonials (incluye no publicados)
func (h *LandingHandler) ListTestimonials(c *fiber.Ctx) error {
	testimonials, err := h.uc.ListTestimonials(c.Context(), false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": testimonials})
}

// DeleteTestimonial DELETE /api/admin/testimonials/:id
func (h *LandingHandler) DeleteTestimonial(c *fiber.Ctx) error {
	if err := h.uc.DeleteTestimonial(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpsertStat PUT /api/admin/stats
func (h *LandingHandler) UpsertStat(c *fiber.Ctx) error {
	var in dto.UpsertSiteStatRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	stat, err := h.uc.UpsertStat(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stat)
}

// GetFooter GET /api/admin/footer
func (h *LandingHandler) GetFooter(c *fiber.Ctx) error {
	footer, err := h.uc.GetFooter(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if footer == nil {
		return notFound(c)
	}
	return c.JSON(footer)
}

// UpdateFooter PUT /api/admin/footer
func (h *LandingHandler) UpdateFooter(c *fiber.Ctx) error {
	var in dto.FooterSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	footer, err := h.uc.UpdateFooter(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(footer)
}
