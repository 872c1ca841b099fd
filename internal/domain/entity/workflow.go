package entity

import "time"

// Tipos de disparador de un workflow.
const (
	TriggerTypeEvent      = "event"
	TriggerTypeKeyword    = "keyword"
	TriggerTypeInactivity = "inactivity"
	TriggerTypeCustom     = "custom"
)

// Tipos de evento que la plataforma emite hacia los workflows.
const (
	EventKeywordReceived  = "KeywordReceived"
	EventMessageDelivered = "MessageDelivered"
	EventMessageFailed    = "MessageFailed"
	EventInactivity       = "Inactivity"
	EventCustom           = "Custom"
)

// Workflow representa una automatización almacenada de un tenant.
// TriggerCriteria guarda el criterio en JSON tal como lo escribió el editor
// de reglas; la interpretación vive en el paquete automation.
type Workflow struct {
	ID              string
	TenantID        string
	Name            string
	TriggerType     string // ver constantes TriggerType*
	TriggerCriteria string // JSON (ej. {"eventType":"MessageDelivered","groupId":"..."})
	Active          bool
	Deleted         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
