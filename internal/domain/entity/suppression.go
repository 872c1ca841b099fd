package entity

import "time"

// Tipos de supresión.
const (
	SuppressionOptOut    = "opt_out"
	SuppressionBounce    = "bounce"
	SuppressionComplaint = "complaint"
	SuppressionManual    = "manual"
)

// Suppression impide contactar un teléfono o email por canales salientes.
// Invariante: a lo sumo una fila activa por (tenant, identifier).
type Suppression struct {
	ID         string
	TenantID   string
	Identifier string // teléfono o email
	Type       string // ver constantes Suppression*
	Reason     string
	Source     string // canal u origen del opt-out (ej. "sms", "webhook", "manual")
	CreatedAt  time.Time
}
