package dto

import "time"

// CreateWorkflowRequest alta de workflow. TriggerCriteria es el JSON del
// editor de reglas; se valida parseándolo antes de guardar.
type CreateWorkflowRequest struct {
	Name            string `json:"name" validate:"required"`
	TriggerType     string `json:"trigger_type" validate:"required"`
	TriggerCriteria string `json:"trigger_criteria" validate:"required"`
	Active          bool   `json:"active"`
}

// UpdateWorkflowRequest actualización parcial (nil = sin cambio).
type UpdateWorkflowRequest struct {
	Name            *string `json:"name"`
	TriggerCriteria *string `json:"trigger_criteria"`
	Active          *bool   `json:"active"`
}

// WorkflowResponse representación de salida de un workflow.
type WorkflowResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TriggerType     string    `json:"trigger_type"`
	TriggerCriteria string    `json:"trigger_criteria"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// WorkflowListResponse listado paginado de workflows.
type WorkflowListResponse struct {
	Items []WorkflowResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TriggerCustomEventRequest registro de un evento de negocio externo.
type TriggerCustomEventRequest struct {
	EventName string            `json:"event_name" validate:"required"`
	ContactID string            `json:"contact_id" validate:"required"`
	EventData map[string]string `json:"event_data"`
}
