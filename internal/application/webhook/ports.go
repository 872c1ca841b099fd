package webhook

import (
	"context"

	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

// TriggerDispatcher es la porción del motor de automatización que consume el
// adaptador. Ambas operaciones re-verifican el tenant del contacto.
type TriggerDispatcher interface {
	TriggerEvent(ctx context.Context, eventType, contactID string, eventData map[string]string) error
	ProcessKeywordTrigger(ctx context.Context, keywordText, contactID string) error
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la supresión y la limpieza de
// flags de opt-in del contacto se confirmen juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		contacts repository.ContactRepository,
		suppressions repository.SuppressionRepository,
	) error) error
}

// ChannelProcessor es el pre-procesador de texto entrante específico del
// canal (normalización de palabras STOP, etc.). Corre sobre el cuerpo crudo
// antes de resolver contacto y triggers; sus fallos no detienen el ingest.
type ChannelProcessor interface {
	ProcessInbound(ctx context.Context, tenantID, from, body string) error
}
