package dto

import "time"

// DispatchRequest solicitud de envío de recordatorio multicanal.
type DispatchRequest struct {
	CustomerID string   `json:"customer_id"`
	Channels   []string `json:"channels"` // email | whatsapp | voice
	Tone       string   `json:"tone"`     // vacío → tono por defecto del owner o "professional"
}

// ChannelOutcome resultado individual de un canal. El orden de la lista de
// resultados es el orden de los canales solicitados, no el de finalización.
type ChannelOutcome struct {
	Channel   string `json:"channel"`
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"` // id del proveedor si hubo envío
	Error     string `json:"error,omitempty"`
}

// DispatchResponse resumen del despacho: un registro Reminder por intento,
// más los resultados por canal.
type DispatchResponse struct {
	ReminderID string           `json:"reminder_id"`
	Message    string           `json:"message"`
	Results    []ChannelOutcome `json:"results"`
	SentCount  int              `json:"sent_count"`
	FailCount  int              `json:"fail_count"`
}

// ReminderCustomer datos mínimos del cliente para el listado de recordatorios.
type ReminderCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ReminderResponse recordatorio persistido; Customer va presente solo cuando
// el listado se pide con datos de cliente.
type ReminderResponse struct {
	ID         string            `json:"id"`
	CustomerID string            `json:"customer_id"`
	Channel    string            `json:"channel"`
	Channels   []string          `json:"channels"`
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	Tone       string            `json:"ai_tone"`
	SentAt     *time.Time        `json:"sent_at,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Customer   *ReminderCustomer `json:"customer,omitempty"`
}

// UpdateReminderStatusRequest actualización del estado de entrega.
type UpdateReminderStatusRequest struct {
	Status string `json:"status"` // sent | delivered | failed | responded
}
