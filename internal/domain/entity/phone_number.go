package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PhoneNumber representa un número de la plataforma aprovisionado ante el
// proveedor. TenantID nil = número del pool sin asignar. El número de destino
// de un mensaje entrante identifica al tenant dueño.
type PhoneNumber struct {
	ID           string
	Number       string  // E.164, único mientras no esté borrado
	TenantID     *string // nil = sin asignar
	Capabilities string  // sms, mms, voice (lista separada por comas)
	MonthlyCost  decimal.Decimal
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
