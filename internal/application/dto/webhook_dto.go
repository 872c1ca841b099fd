package dto

// Payloads que recibe el adaptador de webhooks del proveedor de mensajería.
// Los nombres de campo siguen la convención del proveedor (camelCase).

// InboundMessageWebhook mensaje entrante recibido por un número de la plataforma.
type InboundMessageWebhook struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// DeliveryStatusWebhook cambio de estado de un mensaje saliente.
type DeliveryStatusWebhook struct {
	MessageID    string `json:"messageId"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// OptOutWebhook notificación de baja reportada por el proveedor.
type OptOutWebhook struct {
	Identifier string `json:"identifier"`
	Source     string `json:"source"`
}

// WebhookAck respuesta estándar del adaptador: siempre 200 hacia el
// proveedor; Received queda en false si el procesamiento interno falló.
type WebhookAck struct {
	Received bool `json:"received"`
}
