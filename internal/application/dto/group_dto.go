package dto

import "time"

// CreateGroupRequest petición para crear un grupo de contactos.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateGroupRequest actualización parcial (nil = sin cambio).
type UpdateGroupRequest struct {
	Name *string `json:"name"`
}

// GroupResponse representación de salida de un grupo.
type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupListResponse listado paginado de grupos.
type GroupListResponse struct {
	Items []GroupResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AddGroupMemberRequest inscripción de un contacto en un grupo.
type AddGroupMemberRequest struct {
	ContactID string `json:"contact_id" validate:"required"`
}

// GroupMemberResponse membresía viva de un contacto dentro de un grupo.
type GroupMemberResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	ContactID string    `json:"contact_id"`
	JoinedAt  time.Time `json:"joined_at"`
}

// GroupMemberListResponse listado de miembros de un grupo.
type GroupMemberListResponse struct {
	Items []GroupMemberResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
