package entity

import "time"

// Tenant representa una organización cliente de la plataforma. Todos los
// datos de mercadeo (contactos, workflows, keywords) están aislados por tenant.
type Tenant struct {
	ID        string
	Name      string
	NIT       string // NIT colombiano (con o sin dígito de verificación)
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
