package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/domain"
)

var _ ports.EmailSender = (*ResendService)(nil)

const (
	defaultResendBaseURL = "https://api.resend.com"

	// Remitente sandbox de Resend, válido sin verificar dominio propio.
	sandboxFromEmail = "onboarding@resend.dev"
)

// ResendService adaptador del canal email sobre la API REST de Resend.
// Un intento por llamada; los reintentos no son responsabilidad del adaptador.
type ResendService struct {
	baseURL    string
	httpClient *http.Client
}

// NewResendService construye el adaptador. baseURL vacío usa la API pública.
func NewResendService(baseURL string) *ResendService {
	if baseURL == "" {
		baseURL = defaultResendBaseURL
	}
	return &ResendService{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send envía el correo y devuelve el id asignado por Resend.
func (s *ResendService) Send(ctx context.Context, creds ports.EmailCredentials, msg ports.EmailMessage) (string, error) {
	from := creds.FromEmail
	if from == "" {
		from = sandboxFromEmail
	}

	payload := resendRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("resend: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("resend: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("resend: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("resend: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp resendResponse
		message := string(rawBody)
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Message != "" {
			message = errResp.Message
		}
		return "", &domain.DeliveryError{
			Provider:   "resend",
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	var ok resendResponse
	if err := json.Unmarshal(rawBody, &ok); err != nil {
		return "", fmt.Errorf("resend: deserializar respuesta: %w", err)
	}
	return ok.ID, nil
}
