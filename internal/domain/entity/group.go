package entity

import "time"

// Group representa un segmento nombrado de contactos de un tenant.
type Group struct {
	ID        string
	TenantID  string
	Name      string
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupMember vincula un contacto con un grupo. Invariante: no puede haber
// dos filas no-borradas para el mismo par (contacto, grupo).
type GroupMember struct {
	ID        string
	ContactID string
	GroupID   string
	Deleted   bool
	CreatedAt time.Time
}
