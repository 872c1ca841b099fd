package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

var _ repository.LandingRepository = (*LandingRepo)(nil)

// LandingRepo implementación de LandingRepository: testimonios, cifras del
// landing y pie de página. Contenido global, sin tenant.
type LandingRepo struct {
	q Querier
}

// NewLandingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLandingRepository(q Querier) *LandingRepo {
	return &LandingRepo{q: q}
}

// CreateTestimonial persiste un testimonio.
func (r *LandingRepo) CreateTestimonial(ctx context.Context, t *entity.Testimonial) error {
	query := `
		INSERT INTO testimonials (id, author, company, quote, rating, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Author, t.Company, t.Quote, t.Rating, t.Published, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert testimonial: %w", err)
	}
	return nil
}

// UpdateTestimonial actualiza un testimonio.
func (r *LandingRepo) UpdateTestimonial(ctx context.Context, t *entity.Testimonial) error {
	query := `
		UPDATE testimonials SET author = $2, company = $3, quote = $4, rating = $5,
			published = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Author, t.Company, t.Quote, t.Rating, t.Published, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	return nil
}

// GetTestimonialByID obtiene un testimonio por ID.
func (r *LandingRepo) GetTestimonialByID(ctx context.Context, id string) (*entity.Testimonial, error) {
	query := `
		SELECT id, author, company, quote, rating, published, created_at, updated_at
		FROM testimonials WHERE id = $1`
	var t entity.Testimonial
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Author, &t.Company, &t.Quote, &t.Rating, &t.Published, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get testimonial: %w", err)
	}
	return &t, nil
}

// ListTestimonials lista testimonios; publishedOnly filtra a los publicados.
func (r *LandingRepo) ListTestimonials(ctx context.Context, publishedOnly bool) ([]*entity.Testimonial, error) {
	query := `
		SELECT id, author, company, quote, rating, published, created_at, updated_at
		FROM testimonials`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Testimonial
	for rows.Next() {
		var t entity.Testimonial
		if err := rows.Scan(
			&t.ID, &t.Author, &t.Company, &t.Quote, &t.Rating, &t.Published, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// DeleteTestimonial elimina un testimonio.
func (r *LandingRepo) DeleteTestimonial(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	return nil
}

// UpsertStat crea o reemplaza una cifra destacada por label.
func (r *LandingRepo) UpsertStat(ctx context.Context, stat *entity.SiteStat) error {
	query := `
		INSERT INTO site_stats (id, label, value, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (label)
		DO UPDATE SET value = EXCLUDED.value, sort_order = EXCLUDED.sort_order, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		stat.ID, stat.Label, stat.Value, stat.SortOrder, stat.CreatedAt, stat.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert site stat: %w", err)
	}
	return nil
}

// ListStats lista las cifras destacadas en su orden de presentación.
func (r *LandingRepo) ListStats(ctx context.Context) ([]*entity.SiteStat, error) {
	query := `
		SELECT id, label, value, sort_order, created_at, updated_at
		FROM site_stats ORDER BY sort_order, label`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list site stats: %w", err)
	}
	defer rows.Close()
	var list []*entity.SiteStat
	for rows.Next() {
		var s entity.SiteStat
		if err := rows.Scan(&s.ID, &s.Label, &s.Value, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan site stat: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetFooter devuelve la configuración del pie de página, o (nil, nil) si falta.
func (r *LandingRepo) GetFooter(ctx context.Context) (*entity.FooterSettings, error) {
	query := `
		SELECT id, company_name, address, email, phone, social_links, legal_notice, updated_at
		FROM footer_settings LIMIT 1`
	var f entity.FooterSettings
	err := r.q.QueryRow(ctx, query).Scan(
		&f.ID, &f.CompanyName, &f.Address, &f.Email, &f.Phone, &f.SocialLinks, &f.LegalNotice, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get footer settings: %w", err)
	}
	return &f, nil
}

// UpsertFooter crea o reemplaza la fila única del pie de página.
func (r *LandingRepo) UpsertFooter(ctx context.Context, f *entity.FooterSettings) error {
	query := `
		INSERT INTO footer_settings (id, company_name, address, email, phone, social_links, legal_notice, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET company_name = EXCLUDED.company_name, address = EXCLUDED.address,
			email = EXCLUDED.email, phone = EXCLUDED.phone, social_links = EXCLUDED.social_links,
			legal_notice = EXCLUDED.legal_notice, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.CompanyName, f.Address, f.Email, f.Phone, f.SocialLinks, f.LegalNotice, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert footer settings: %w", err)
	}
	return nil
}
