package ai

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
)

// Verificar en tiempo de compilación que OpenAIService implementa MessageGenerator.
var _ ports.MessageGenerator = (*OpenAIService)(nil)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"

	openAISystemPrompt = "You are a professional financial assistant helping with payment reminders."
)

// OpenAIService adaptador que implementa MessageGenerator usando la API de
// chat completions de OpenAI. Usa net/http de la librería estándar de Go;
// no requiere el SDK oficial. La API key no vive aquí: es del owner y llega
// por llamada.
type OpenAIService struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenAIService construye el adaptador.
// model suele ser "gpt-3.5-turbo". baseURL vacío usa la API pública; se puede
// apuntar a cualquier endpoint compatible con chat completions.
func NewOpenAIService(baseURL, model string) *OpenAIService {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIService{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo chat completions ──────────────────────

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// GenerateReminderMessage pide al modelo el cuerpo del recordatorio y devuelve
// el texto de la primera choice tal cual, sin posprocesar.
func (s *OpenAIService) GenerateReminderMessage(ctx context.Context, apiKey string, prompt ports.ReminderPrompt) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("AI: OpenAI API key no configurada")
	}

	userContent := fmt.Sprintf(
		"Generate a %s payment reminder message for a customer named %s who owes $%s due on %s. Keep it professional but %s.",
		prompt.Tone,
		prompt.CustomerName,
		prompt.AmountDue.StringFixed(2),
		prompt.DueDate.Format("2006-01-02"),
		prompt.Tone,
	)

	payload := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: userContent},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp chatResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: OpenAI error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: OpenAI HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta OpenAI: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("AI: el modelo devolvió respuesta vacía")
	}

	return chatResp.Choices[0].Message.Content, nil
}
