package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una campaña.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusSending   = "sending"
	CampaignStatusSent      = "sent"
)

// Campaign representa un envío masivo de un tenant hacia un grupo de contactos.
type Campaign struct {
	ID          string
	TenantID    string
	Name        string
	MessageBody string
	Status      string  // ver constantes CampaignStatus*
	GroupID     *string // nil = campaña sin audiencia todavía
	SegmentCost decimal.Decimal // costo por segmento SMS (COP)
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
