package dto

import "time"

// CreateSuppressionRequest alta manual de una supresión.
type CreateSuppressionRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Reason     string `json:"reason"`
}

// SuppressionResponse representación de salida de una supresión.
type SuppressionResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	Identifier string    `json:"identifier"`
	Type       string    `json:"type"`
	Reason     string    `json:"reason,omitempty"`
	Source     string    `json:"source,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SuppressionListResponse listado paginado de supresiones.
type SuppressionListResponse struct {
	Items []SuppressionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
