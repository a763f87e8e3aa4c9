package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/domain"
)

var (
	_ ports.MessagingSender = (*TwilioService)(nil)
	_ ports.VoiceCaller     = (*TwilioService)(nil)
)

const defaultTwilioBaseURL = "https://api.twilio.com"

// TwilioService adaptador de los canales whatsapp y voice sobre la API REST
// de Twilio (form-encoded, Basic auth con SID y token del owner).
type TwilioService struct {
	baseURL    string
	httpClient *http.Client
}

// NewTwilioService construye el adaptador. baseURL vacío usa la API pública.
func NewTwilioService(baseURL string) *TwilioService {
	if baseURL == "" {
		baseURL = defaultTwilioBaseURL
	}
	return &TwilioService{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

type twilioResponse struct {
	SID     string `json:"sid"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// SendWhatsApp envía el mensaje por el canal whatsapp de Twilio.
// Ambos números llevan el prefijo "whatsapp:" que exige el proveedor.
func (s *TwilioService) SendWhatsApp(ctx context.Context, creds ports.TwilioCredentials, to, body string) (string, error) {
	form := url.Values{}
	form.Set("From", "whatsapp:"+creds.PhoneNumber)
	form.Set("To", "whatsapp:"+to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, creds.AccountSID)
	return s.post(ctx, creds, endpoint, form)
}

// Call inicia una llamada que lee el mensaje con sintetizador de voz.
// El mensaje viaja como TwiML inline en el parámetro Twiml.
func (s *TwilioService) Call(ctx context.Context, creds ports.TwilioCredentials, to, message string) (string, error) {
	twiml, err := buildSayTwiML(message)
	if err != nil {
		return "", fmt.Errorf("twilio: construir TwiML: %w", err)
	}

	form := url.Values{}
	form.Set("From", creds.PhoneNumber)
	form.Set("To", to)
	form.Set("Twiml", twiml)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json", s.baseURL, creds.AccountSID)
	return s.post(ctx, creds, endpoint, form)
}

func (s *TwilioService) post(ctx context.Context, creds ports.TwilioCredentials, endpoint string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("twilio: crear HTTP request: %w", err)
	}
	req.SetBasicAuth(creds.AccountSID, creds.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("twilio: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("twilio: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp twilioResponse
		message := string(rawBody)
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Message != "" {
			message = errResp.Message
		}
		return "", &domain.DeliveryError{
			Provider:   "twilio",
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	var ok twilioResponse
	if err := json.Unmarshal(rawBody, &ok); err != nil {
		return "", fmt.Errorf("twilio: deserializar respuesta: %w", err)
	}
	return ok.SID, nil
}

// buildSayTwiML genera el documento <Response><Say>…</Say></Response> con el
// escape XML correcto para cualquier contenido del mensaje.
func buildSayTwiML(message string) (string, error) {
	doc := etree.NewDocument()
	response := doc.CreateElement("Response")
	say := response.CreateElement("Say")
	say.CreateAttr("voice", "alice")
	say.SetText(message)
	return doc.WriteToString()
}
