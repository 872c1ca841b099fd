package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCampaignRequest alta de campaña (queda en borrador).
type CreateCampaignRequest struct {
	Name        string          `json:"name" validate:"required"`
	MessageBody string          `json:"message_body" validate:"required"`
	GroupID     *string         `json:"group_id"`
	SegmentCost decimal.Decimal `json:"segment_cost"`
}

// CampaignResponse representación de salida de una campaña.
type CampaignResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	MessageBody string          `json:"message_body"`
	Status      string          `json:"status"`
	GroupID     *string         `json:"group_id,omitempty"`
	SegmentCost decimal.Decimal `json:"segment_cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CampaignListResponse listado paginado de campañas.
type CampaignListResponse struct {
	Items []CampaignResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SendCampaignResponse resultado del envío: cuántos mensajes se encolaron y
// cuántos contactos se saltaron por supresión u opt-out.
type SendCampaignResponse struct {
	CampaignID string          `json:"campaign_id"`
	Enqueued   int             `json:"enqueued"`
	Skipped    int             `json:"skipped"`
	TotalCost  decimal.Decimal `json:"total_cost"`
}
