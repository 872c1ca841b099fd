package entity

import "time"

// Estados de un keyword.
const (
	KeywordStatusActive   = "active"
	KeywordStatusInactive = "inactive"
)

// Keyword representa una palabra clave de respuesta entrante de un tenant
// (ej. "PROMO" por SMS). El match es case-insensitive.
type Keyword struct {
	ID              string
	TenantID        string
	Text            string
	Status          string  // active, inactive
	ResponseMessage string  // respuesta automática al remitente (vacío = sin respuesta)
	OptInGroupID    *string // nil = el keyword no inscribe a ningún grupo
	CampaignID      *string // nil = sin campaña vinculada
	Deleted         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// KeywordActivity es la bitácora append-only de keywords recibidos.
// Nunca se actualiza ni se borra.
type KeywordActivity struct {
	ID              string
	KeywordID       string
	Phone           string
	IncomingMessage string
	ResponseMessage string
	ReceivedAt      time.Time
}
