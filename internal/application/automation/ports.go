package automation

import "context"

// Tipos de trabajo encolados por el motor de automatización.
const (
	JobWorkflowExecution = "workflow.execute"
	JobTriggerEvent      = "automation.trigger_event"
	JobMessageSend       = "message.send"
)

// Job es el descriptor serializable que viaja por la cola de trabajos.
// Para JobWorkflowExecution aplican WorkflowID y ContactID; para
// JobTriggerEvent aplican EventType, ContactID y EventData; para
// JobMessageSend aplica MessageID.
type Job struct {
	Type       string            `json:"type"`
	TenantID   string            `json:"tenant_id"`
	WorkflowID string            `json:"workflow_id,omitempty"`
	ContactID  string            `json:"contact_id,omitempty"`
	MessageID  string            `json:"message_id,omitempty"`
	EventType  string            `json:"event_type,omitempty"`
	EventData  map[string]string `json:"event_data,omitempty"`
}

// TaskQueue encola trabajos fire-and-forget. El llamador no espera ni
// observa el resultado de la ejecución; los reintentos son responsabilidad
// de la infraestructura de cola.
type TaskQueue interface {
	Enqueue(ctx context.Context, job Job) error
}

// WorkflowInvoker ejecuta un workflow contra un contacto. Lo consume el
// worker que drena la cola; el resolver nunca lo llama directamente.
type WorkflowInvoker interface {
	Invoke(ctx context.Context, workflowID, contactID string) error
}
