package http

import (
	"bufio"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
	"github.com/jhoicas/Cobranza-api/internal/application/watch"
)

// keepAliveInterval separación de los comentarios SSE que mantienen viva la
// conexión a través de proxies.
const keepAliveInterval = 25 * time.Second

// EventsHandler stream de cambios por Server-Sent Events. Cada vez que una
// colección del owner cambia se empuja el snapshot completo; el cliente
// reemplaza su estado local sin resolver diffs.
type EventsHandler struct {
	hub        *watch.Hub
	customerUC *usecase.CustomerUseCase
	reminderUC *usecase.ReminderUseCase
}

// NewEventsHandler construye el handler.
func NewEventsHandler(hub *watch.Hub, customerUC *usecase.CustomerUseCase, reminderUC *usecase.ReminderUseCase) *EventsHandler {
	return &EventsHandler{hub: hub, customerUC: customerUC, reminderUC: reminderUC}
}

// Stream GET /api/events?collection=customers|reminders
// El token JWT llega por query param (access_token): EventSource no permite
// headers. Al conectar se envía un snapshot inicial y luego uno por cambio.
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	collection := c.Query("collection", watch.CollectionCustomers)
	if collection != watch.CollectionCustomers && collection != watch.CollectionReminders {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "collection debe ser customers o reminders"})
	}

	notify, cancel := h.hub.Subscribe(ownerID, collection)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		if err := h.writeSnapshot(w, ownerID, collection); err != nil {
			return
		}

		keepAlive := time.NewTicker(keepAliveInterval)
		defer keepAlive.Stop()

		for {
			select {
			case _, ok := <-notify:
				if !ok {
					return
				}
				if err := h.writeSnapshot(w, ownerID, collection); err != nil {
					return
				}
			case <-keepAlive.C:
				// Comentario SSE: no genera evento en el cliente.
				if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

// writeSnapshot serializa el estado actual de la colección y lo emite como un
// evento SSE. Un error de escritura significa cliente desconectado.
func (h *EventsHandler) writeSnapshot(w *bufio.Writer, ownerID, collection string) error {
	var payload any
	var err error
	switch collection {
	case watch.CollectionCustomers:
		payload, err = h.customerUC.List(ownerID)
	case watch.CollectionReminders:
		payload, err = h.reminderUC.List(ownerID, true)
	}
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := w.WriteString("event: " + collection + "\ndata: " + string(data) + "\n\n"); err != nil {
		return err
	}
	return w.Flush()
}
