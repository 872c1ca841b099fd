package dto

import "time"

// CreateKeywordRequest alta de keyword.
type CreateKeywordRequest struct {
	Text            string  `json:"text" validate:"required"`
	ResponseMessage string  `json:"response_message"`
	OptInGroupID    *string `json:"opt_in_group_id"`
	CampaignID      *string `json:"campaign_id"`
}

// UpdateKeywordRequest actualización parcial (nil = sin cambio).
type UpdateKeywordRequest struct {
	Status          *string `json:"status"`
	ResponseMessage *string `json:"response_message"`
	OptInGroupID    *string `json:"opt_in_group_id"`
	CampaignID      *string `json:"campaign_id"`
}

// KeywordResponse representación de salida de un keyword.
type KeywordResponse struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	Status          string    `json:"status"`
	ResponseMessage string    `json:"response_message,omitempty"`
	OptInGroupID    *string   `json:"opt_in_group_id,omitempty"`
	CampaignID      *string   `json:"campaign_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// KeywordListResponse listado paginado de keywords.
type KeywordListResponse struct {
	Items []KeywordResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// KeywordActivityResponse fila de la bitácora de keywords.
type KeywordActivityResponse struct {
	ID              string    `json:"id"`
	KeywordID       string    `json:"keyword_id"`
	Phone           string    `json:"phone"`
	IncomingMessage string    `json:"incoming_message"`
	ResponseMessage string    `json:"response_message,omitempty"`
	ReceivedAt      time.Time `json:"received_at"`
}
