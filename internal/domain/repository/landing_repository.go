package repository

import (
	"context"

	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
)

// LandingRepository define el puerto de persistencia del contenido del
// landing page (testimonios, cifras y pie de página).
type LandingRepository interface {
	CreateTestimonial(ctx context.Context, testimonial *entity.Testimonial) error
	UpdateTestimonial(ctx context.Context, testimonial *entity.Testimonial) error
	GetTestimonialByID(ctx context.Context, id string) (*entity.Testimonial, error)
	// ListTestimonials con publishedOnly=true devuelve solo los publicados
	// (vista pública del landing).
	ListTestimonials(ctx context.Context, publishedOnly bool) ([]*entity.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error

	UpsertStat(ctx context.Context, stat *entity.SiteStat) error
	ListStats(ctx context.Context) ([]*entity.SiteStat, error)

	// GetFooter devuelve (nil, nil) si todavía no se ha configurado.
	GetFooter(ctx context.Context) (*entity.FooterSettings, error)
	UpsertFooter(ctx context.Context, settings *entity.FooterSettings) error
}
