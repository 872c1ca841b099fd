package webhook

import (
	"context"
	"strings"

	"github.com/jhoicas/Mercadeo-api/pkg/logger"
)

// Palabras de baja reconocidas en el canal SMS (español e inglés). El match
// es sobre el primer token del cuerpo, sin distinguir mayúsculas.
var stopWords = map[string]struct{}{
	"STOP":        {},
	"BAJA":        {},
	"CANCELAR":    {},
	"SALIR":       {},
	"UNSUBSCRIBE": {},
}

// optOutRegistrar es lo único que el pre-procesador necesita del adaptador.
type optOutRegistrar interface {
	ProcessOptOut(ctx context.Context, phoneOrEmail, source string) bool
}

// StopWordProcessor es el ChannelProcessor por defecto del canal SMS:
// detecta palabras STOP en el cuerpo entrante y registra el opt-out del
// remitente antes de que el mensaje siga hacia keywords y triggers.
type StopWordProcessor struct {
	optOuts optOutRegistrar
	log     *logger.Logger
}

// NewStopWordProcessor construye el pre-procesador.
func NewStopWordProcessor(optOuts optOutRegistrar, log *logger.Logger) *StopWordProcessor {
	return &StopWordProcessor{optOuts: optOuts, log: log}
}

// ProcessInbound registra el opt-out si el primer token es una palabra STOP.
func (p *StopWordProcessor) ProcessInbound(ctx context.Context, tenantID, from, body string) error {
	token := firstToken(body)
	if _, ok := stopWords[strings.ToUpper(token)]; !ok {
		return nil
	}
	p.log.Info().Str("from", from).Str("tenant_id", tenantID).Str("word", token).
		Msg("palabra STOP detectada en mensaje entrante")
	if !p.optOuts.ProcessOptOut(ctx, from, "sms") {
		p.log.Warn().Str("from", from).Str("tenant_id", tenantID).
			Msg("no se pudo registrar el opt-out de la palabra STOP")
	}
	return nil
}
