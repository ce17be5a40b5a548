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

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
)

var (
	_ ports.ChatAssistant = (*AnthropicService)(nil)
	_ ports.ImageAnalyzer = (*AnthropicService)(nil)
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicService adaptador sobre la API REST de Anthropic (Messages).
type AnthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador. Si apiKey está vacío las llamadas devuelven error.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    anthropicBaseURL,
		httpClient: &http.Client{Timeout: 25 * time.Second},
	}
}

// WithBaseURL apunta el cliente a otro host (tests con httptest).
func (s *AnthropicService) WithBaseURL(url string) *AnthropicService {
	s.baseURL = strings.TrimRight(url, "/")
	return s
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación de los puertos ─────────────────────────────────────────────

// Chat convierte el historial a turnos user/assistant alternados, empezando por user.
func (s *AnthropicService) Chat(ctx context.Context, message string, history []dto.ChatTurn) (*dto.ChatResponse, error) {
	turns := append(append([]dto.ChatTurn(nil), history...), dto.ChatTurn{Sender: "user", Text: message})
	text, err := s.send(ctx, anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    chatSystemPrompt,
		Messages:  toAnthropicMessages(turns),
	})
	if err != nil {
		return nil, err
	}
	return parseChatResponse(text), nil
}

// AnalyzeImage envía la imagen como bloque base64 seguido del prompt.
func (s *AnthropicService) AnalyzeImage(ctx context.Context, imageBase64, mimeType, currency string) (*dto.ProductDraft, error) {
	text, err := s.send(ctx, anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		Messages: []anthropicMessage{{
			Role: "user",
			Content: []anthropicContent{
				{Type: "image", Source: &anthropicSource{Type: "base64", MediaType: mimeType, Data: imageBase64}},
				{Type: "text", Text: imagePrompt(currency)},
			},
		}},
	})
	if err != nil {
		return nil, err
	}
	return parseProductDraft(text)
}

// toAnthropicMessages fusiona turnos consecutivos del mismo rol y descarta los del asistente previos al primer user.
func toAnthropicMessages(turns []dto.ChatTurn) []anthropicMessage {
	out := make([]anthropicMessage, 0, len(turns))
	for _, t := range turns {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		role := "user"
		if t.Sender == "bot" {
			role = "assistant"
		}
		if len(out) == 0 && role == "assistant" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Role == role {
			last := &out[n-1].Content[0]
			last.Text += "\n\n" + text
			continue
		}
		out = append(out, anthropicMessage{Role: role, Content: []anthropicContent{{Type: "text", Text: text}}})
	}
	return out
}

func (s *AnthropicService) send(ctx context.Context, payload anthropicRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", resp.StatusCode)
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	var sb strings.Builder
	for _, c := range anthResp.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return sb.String(), nil
}
