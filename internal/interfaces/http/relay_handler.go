package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/domain"
)

// RelayHandler reenvía correos en nombre de clientes que no pueden llamar al
// proveedor directamente (el navegador bloquea la llamada por CORS). La API
// key viaja en el cuerpo de cada petición; el relay no guarda credenciales.
type RelayHandler struct {
	email ports.EmailSender
}

// NewRelayHandler construye el handler.
func NewRelayHandler(email ports.EmailSender) *RelayHandler {
	return &RelayHandler{email: email}
}

type relayEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Content string `json:"content"`
	From    string `json:"from"`
	APIKey  string `json:"apiKey"`
}

type relayEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SendEmail POST /api/send-email
func (h *RelayHandler) SendEmail(c *fiber.Ctx) error {
	var in relayEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(relayEmailResponse{Error: "cuerpo inválido"})
	}
	if in.To == "" || in.Subject == "" || in.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(relayEmailResponse{Error: "to, subject y content son requeridos"})
	}
	if in.APIKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(relayEmailResponse{Error: "apiKey es requerido"})
	}

	id, err := h.email.Send(c.Context(),
		ports.EmailCredentials{APIKey: in.APIKey, FromEmail: in.From},
		ports.EmailMessage{To: in.To, Subject: in.Subject, HTML: in.Content},
	)
	if err != nil {
		var delErr *domain.DeliveryError
		if errors.As(err, &delErr) {
			// El status del proveedor se reenvía tal cual al cliente.
			status := delErr.StatusCode
			if status == 0 {
				status = fiber.StatusBadGateway
			}
			return c.Status(status).JSON(relayEmailResponse{Error: delErr.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(relayEmailResponse{Error: err.Error()})
	}
	return c.JSON(relayEmailResponse{Success: true, MessageID: id})
}

// Health GET /api/health
func (h *RelayHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Test GET /api/test
func (h *RelayHandler) Test(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Email relay server is running"})
}
