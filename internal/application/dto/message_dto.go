package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MessageResponse representación de salida de un mensaje saliente.
type MessageResponse struct {
	ID           string          `json:"id"`
	CampaignID   *string         `json:"campaign_id,omitempty"`
	ContactID    string          `json:"contact_id"`
	Phone        string          `json:"phone"`
	Body         string          `json:"body"`
	ExternalID   string          `json:"external_id,omitempty"`
	Status       string          `json:"status"`
	Cost         decimal.Decimal `json:"cost"`
	ErrorMessage string          `json:"error_message,omitempty"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty"`
	FailedAt     *time.Time      `json:"failed_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MessageListResponse listado paginado de mensajes.
type MessageListResponse struct {
	Items []MessageResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
