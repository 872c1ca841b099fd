package dto

import "time"

// DTOs del CMS ligero del landing público.

// CreateTestimonialRequest alta de un testimonio.
type CreateTestimonialRequest struct {
	Author    string `json:"author" validate:"required"`
	Company   string `json:"company"`
	Quote     string `json:"quote" validate:"required"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Published bool   `json:"published"`
}

// UpdateTestimonialRequest actualización parcial de un testimonio.
type UpdateTestimonialRequest struct {
	Author    *string `json:"author,omitempty"`
	Company   *string `json:"company,omitempty"`
	Quote     *string `json:"quote,omitempty"`
	Rating    *int    `json:"rating,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// TestimonialResponse representación de salida de un testimonio.
type TestimonialResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Company   string    `json:"company,omitempty"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertSiteStatRequest crea o actualiza una cifra destacada del landing.
type UpsertSiteStatRequest struct {
	Label     string `json:"label" validate:"required"`
	Value     string `json:"value" validate:"required"`
	SortOrder int    `json:"sort_order"`
}

// SiteStatResponse cifra destacada del landing.
type SiteStatResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	SortOrder int    `json:"sort_order"`
}

// FooterSettingsRequest actualización del pie de página (fila única).
type FooterSettingsRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	SocialLinks string `json:"social_links"`
	LegalNotice string `json:"legal_notice"`
}

// FooterSettingsResponse configuración vigente del pie de página.
type FooterSettingsResponse struct {
	CompanyName string    `json:"company_name"`
	Address     string    `json:"address,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	SocialLinks string    `json:"social_links,omitempty"`
	LegalNotice string    `json:"legal_notice,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LandingContentResponse agrega todo el contenido público del landing.
type LandingContentResponse struct {
	Testimonials []TestimonialResponse  `json:"testimonials"`
	Stats        []SiteStatResponse     `json:"stats"`
	Footer       FooterSettingsResponse `json:"footer"`
}
