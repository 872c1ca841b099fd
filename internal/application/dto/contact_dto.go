package dto

import "time"

// CreateContactRequest alta de contacto.
type CreateContactRequest struct {
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	SMSOptIn   bool   `json:"sms_opt_in"`
	EmailOptIn bool   `json:"email_opt_in"`
}

// UpdateContactRequest actualización parcial (nil = sin cambio).
type UpdateContactRequest struct {
	Email      *string `json:"email"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	SMSOptIn   *bool   `json:"sms_opt_in"`
	EmailOptIn *bool   `json:"email_opt_in"`
	Active     *bool   `json:"active"`
}

// ContactResponse representación de salida de un contacto.
type ContactResponse struct {
	ID         string    `json:"id"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	SMSOptIn   bool      `json:"sms_opt_in"`
	EmailOptIn bool      `json:"email_opt_in"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ContactListResponse listado paginado de contactos.
type ContactListResponse struct {
	Items []ContactResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
