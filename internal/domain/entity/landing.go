package entity

import "time"

// Entidades del landing page público de la plataforma (CMS ligero).
// No están asociadas a un tenant: son contenido global del sitio.

// Testimonial representa un testimonio publicado en el landing.
type Testimonial struct {
	ID        string
	Author    string
	Company   string
	Quote     string
	Rating    int // 1-5
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SiteStat representa una cifra destacada del landing (ej. "mensajes enviados").
type SiteStat struct {
	ID        string
	Label     string
	Value     string // se guarda como texto ya formateado ("1.2M", "99.9%")
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FooterSettings es la configuración del pie de página (fila única).
type FooterSettings struct {
	ID           string
	CompanyName  string
	Address      string
	Email        string
	Phone        string
	SocialLinks  string // JSON {"facebook":"...","instagram":"..."}
	LegalNotice  string
	UpdatedAt    time.Time
}
