package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados internos de un mensaje saliente.
const (
	MessageStatusQueued    = "queued"
	MessageStatusSending   = "sending"
	MessageStatusDelivered = "delivered"
	MessageStatusFailed    = "failed"
)

// Message representa un mensaje saliente individual. ExternalID es el id que
// asigna el proveedor de envío; los callbacks de estado llegan con ese id.
type Message struct {
	ID           string
	TenantID     string
	CampaignID   *string // nil = mensaje transaccional fuera de campaña
	ContactID    string
	Phone        string
	Body         string
	ExternalID   string
	Status       string // ver constantes MessageStatus*
	Cost         decimal.Decimal
	ErrorMessage string
	DeliveredAt  *time.Time
	FailedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
