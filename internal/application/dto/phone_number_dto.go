package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PhoneNumberResponse representación de salida de un número de la plataforma.
type PhoneNumberResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	TenantID     *string         `json:"tenant_id,omitempty"`
	Capabilities string          `json:"capabilities"`
	MonthlyCost  decimal.Decimal `json:"monthly_cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PhoneNumberListResponse listado paginado de números.
type PhoneNumberListResponse struct {
	Items []PhoneNumberResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ProvisionNumberRequest alta de un número en el pool (administración).
type ProvisionNumberRequest struct {
	Number       string          `json:"number" validate:"required"`
	Capabilities string          `json:"capabilities"`
	MonthlyCost  decimal.Decimal `json:"monthly_cost"`
}
