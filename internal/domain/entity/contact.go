package entity

import "time"

// Contact representa un contacto de mercadeo propiedad de un tenant.
// Nunca se elimina físicamente: Deleted marca la baja lógica.
type Contact struct {
	ID         string
	TenantID   string
	Phone      string // E.164 (ej. +573001234567)
	Email      string
	FirstName  string
	LastName   string
	SMSOptIn   bool
	EmailOptIn bool
	Active     bool
	Deleted    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time // también se usa como marca de última actividad (triggers de inactividad)
}
