package entity

import "time"

// Canales de envío de recordatorios.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelVoice    = "voice"
)

// Estados de entrega de un recordatorio.
const (
	ReminderPending   = "pending"
	ReminderSent      = "sent"
	ReminderDelivered = "delivered"
	ReminderFailed    = "failed"
	ReminderResponded = "responded"
)

// Reminder registra un intento de envío de recordatorio de pago.
// Se crea un registro por despacho: Channel es el canal primario (el primero
// solicitado) y Channels conserva la lista completa solicitada. CustomerID es
// una referencia débil: se resuelve por id al listar, sin FK de borrado.
type Reminder struct {
	ID         string
	OwnerID    string
	CustomerID string
	Channel    string   // canal primario
	Channels   []string // todos los canales solicitados en el despacho
	Status     string   // pending | sent | delivered | failed | responded
	Message    string   // contenido generado enviado al cliente
	Tone       string   // tono de IA usado para generar el mensaje
	SentAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
