package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReminderPrompt parámetros que se interpolan en el prompt de generación.
type ReminderPrompt struct {
	CustomerName string
	AmountDue    decimal.Decimal
	DueDate      time.Time
	Tone         string // professional | friendly | firm | urgent
}

// MessageGenerator define el puerto de salida hacia el servicio de generación
// de texto. Cualquier adaptador (OpenAI, compatible, mock) debe implementar
// esta interfaz. La aplicación solo conoce este contrato, no la implementación.
// La API key es del owner (viene de sus ProviderSettings), por eso viaja por
// llamada y no en el constructor del adaptador.
type MessageGenerator interface {
	// GenerateReminderMessage produce el cuerpo del recordatorio. Se invoca
	// exactamente una vez por despacho; el mensaje se comparte entre canales.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	GenerateReminderMessage(ctx context.Context, apiKey string, prompt ReminderPrompt) (string, error)
}
