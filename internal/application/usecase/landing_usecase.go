package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercadeo-api/internal/application/dto"
	"github.com/jhoicas/Mercadeo-api/internal/domain"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

// LandingUseCase administra el contenido del landing público: testimonios,
// cifras destacadas y pie de página. Es contenido global, sin tenant.
type LandingUseCase struct {
	repo repository.LandingRepository
}

// NewLandingUseCase construye el caso de uso.
func NewLandingUseCase(repo repository.LandingRepository) *LandingUseCase {
	return &LandingUseCase{repo: repo}
}

// CreateTestimonial crea un testimonio.
func (uc *LandingUseCase) CreateTestimonial(ctx context.Context, in dto.CreateTestimonialRequest) (*dto.TestimonialResponse, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	testimonial := &entity.Testimonial{
		ID:        uuid.New().String(),
		Author:    in.Author,
		Company:   in.Company,
		Quote:     in.Quote,
		Rating:    in.Rating,
		Published: in.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateTestimonial(ctx, testimonial); err != nil {
		return nil, err
	}
	return toTestimonialResponse(testimonial), nil
}

// UpdateTestimonial actualiza un testimonio (campos nil no cambian).
func (uc *LandingUseCase) UpdateTestimonial(ctx context.Context, id string, in dto.UpdateTestimonialRequest) (*dto.TestimonialResponse, error) {
	testimonial, err := uc.repo.GetTestimonialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if testimonial == nil {
		return nil, nil
	}
	if in.Author != nil {
		testimonial.Author = *in.Author
	}
	if in.Company != nil {
		testimonial.Company = *in.Company
	}
	if in.Quote != nil {
		testimonial.Quote = *in.Quote
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, domain.ErrInvalidInput
		}
		testimonial.Rating = *in.Rating
	}
	if in.Published != nil {
		testimonial.Published = *in.Published
	}
	testimonial.UpdatedAt = time.Now()
	if err := uc.repo.UpdateTestimonial(ctx, testimonial); err != nil {
		return nil, err
	}
	return toTestimonialResponse(testimonial), nil
}

// ListTestimonials lista testimonios; publishedOnly filtra a los publicados.
func (uc *LandingUseCase) ListTestimonials(ctx context.Context, publishedOnly bool) ([]dto.TestimonialResponse, error) {
	list, err := uc.repo.ListTestimonials(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TestimonialResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTestimonialResponse(t))
	}
	return items, nil
}

// DeleteTestimonial elimina un testimonio.
func (uc *LandingUseCase) DeleteTestimonial(ctx context.Context, id string) error {
	testimonial, err := uc.repo.GetTestimonialByID(ctx, id)
	if err != nil {
		return err
	}
	if testimonial == nil {
		return domain.ErrNotFound
	}
	return uc.repo.DeleteTestimonial(ctx, id)
}

// UpsertStat crea o reemplaza una cifra destacada, identificada por su label.
func (uc *LandingUseCase) UpsertStat(ctx context.Context, in dto.UpsertSiteStatRequest) (*dto.SiteStatResponse, error) {
	now := time.Now()
	stat := &entity.SiteStat{
		ID:        uuid.New().String(),
		Label:     in.Label,
		Value:     in.Value,
		SortOrder: in.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.UpsertStat(ctx, stat); err != nil {
		return nil, err
	}
	return toSiteStatResponse(stat), nil
}

// GetFooter devuelve la configuración del pie de página, o nil si falta.
func (uc *LandingUseCase) GetFooter(ctx context.Context) (*dto.FooterSettingsResponse, error) {
	footer, err := uc.repo.GetFooter(ctx)
	if err != nil {
		return nil, err
	}
	if footer == nil {
		return nil, nil
	}
	return toFooterResponse(footer), nil
}

// UpdateFooter reemplaza la configuración del pie de página (fila única).
func (uc *LandingUseCase) UpdateFooter(ctx context.Context, in dto.FooterSettingsRequest) (*dto.FooterSettingsResponse, error) {
	footer, err := uc.repo.GetFooter(ctx)
	if err != nil {
		return nil, err
	}
	if footer == nil {
		footer = &entity.FooterSettings{ID: uuid.New().String()}
	}
	footer.CompanyName = in.CompanyName
	footer.Address = in.Address
	footer.Email = in.Email
	footer.Phone = in.Phone
	footer.SocialLinks = in.SocialLinks
	footer.LegalNotice = in.LegalNotice
	footer.UpdatedAt = time.Now()
	if err := uc.repo.UpsertFooter(ctx, footer); err != nil {
		return nil, err
	}
	return toFooterResponse(footer), nil
}

// PublicContent arma la vista pública del landing en una sola respuesta.
func (uc *LandingUseCase) PublicContent(ctx context.Context) (*dto.LandingContentResponse, error) {
	testimonials, err := uc.ListTestimonials(ctx, true)
	if err != nil {
		return nil, err
	}
	stats, err := uc.repo.ListStats(ctx)
	if err != nil {
		return nil, err
	}
	statItems := make([]dto.SiteStatResponse, 0, len(stats))
	for _, s := range stats {
		statItems = append(statItems, *toSiteStatResponse(s))
	}
	out := &dto.LandingContentResponse{
		Testimonials: testimonials,
		Stats:        statItems,
	}
	footer, err := uc.repo.GetFooter(ctx)
	if err != nil {
		return nil, err
	}
	if footer != nil {
		out.Footer = *toFooterResponse(footer)
	}
	return out, nil
}

func toTestimonialResponse(t *entity.Testimonial) *dto.TestimonialResponse {
	if t == nil {
		return nil
	}
	return &dto.TestimonialResponse{
		ID:        t.ID,
		Author:    t.Author,
		Company:   t.Company,
		Quote:     t.Quote,
		Rating:    t.Rating,
		Published: t.Published,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toSiteStatResponse(s *entity.SiteStat) *dto.SiteStatResponse {
	if s == nil {
		return nil
	}
	return &dto.SiteStatResponse{
		ID:        s.ID,
		Label:     s.Label,
		Value:     s.Value,
		SortOrder: s.SortOrder,
	}
}

func toFooterResponse(f *entity.FooterSettings) *dto.FooterSettingsResponse {
	if f == nil {
		return nil
	}
	return &dto.FooterSettingsResponse{
		CompanyName: f.CompanyName,
		Address:     f.Address,
		Email:       f.Email,
		Phone:       f.Phone,
		SocialLinks: f.SocialLinks,
		LegalNotice: f.LegalNotice,
		UpdatedAt:   f.UpdatedAt,
	}
}
