package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/pkg/logger"
)

// Verificar en tiempo de compilación que GeminiService implementa ambos puertos.
var (
	_ ports.ChatAssistant = (*GeminiService)(nil)
	_ ports.ImageAnalyzer = (*GeminiService)(nil)
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService adaptador sobre la API REST de Google Gemini.
// Prueba los modelos en orden hasta que uno responda.
type GeminiService struct {
	apiKey     string
	models     []string
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewGeminiService construye el adaptador. models es la cadena de fallback, en orden.
func NewGeminiService(apiKey string, models []string, log *logger.Logger) *GeminiService {
	if log == nil {
		log = logger.Nop()
	}
	return &GeminiService{
		apiKey:  apiKey,
		models:  models,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 25 * time.Second, // el caso de uso también pone WithTimeout
		},
		log: log.Component("gemini"),
	}
}

// WithBaseURL apunta el cliente a otro host (tests con httptest).
func (s *GeminiService) WithBaseURL(url string) *GeminiService {
	s.baseURL = strings.TrimRight(url, "/")
	return s
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig *genConfig      `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string        `json:"text,omitempty"`
	InlineData *geminiInline `json:"inlineData,omitempty"`
}

type geminiInline struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type genConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación de los puertos ─────────────────────────────────────────────

// Chat envía el prompt de sistema como primer turno, luego el historial y el mensaje.
func (s *GeminiService) Chat(ctx context.Context, message string, history []dto.ChatTurn) (*dto.ChatResponse, error) {
	contents := make([]geminiContent, 0, len(history)+3)
	contents = append(contents,
		geminiContent{Role: "user", Parts: []geminiPart{{Text: chatSystemPrompt}}},
		geminiContent{Role: "model", Parts: []geminiPart{{Text: chatPrimerAck}}},
	)
	for _, h := range history {
		if strings.TrimSpace(h.Text) == "" {
			continue
		}
		role := "user"
		if h.Sender == "bot" {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: h.Text}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})

	text, err := s.generate(ctx, geminiRequest{
		Contents:         contents,
		GenerationConfig: &genConfig{ResponseMIMEType: "application/json"},
	})
	if err != nil {
		return nil, err
	}
	return parseChatResponse(text), nil
}

// AnalyzeImage envía el prompt y la imagen como inlineData.
func (s *GeminiService) AnalyzeImage(ctx context.Context, imageBase64, mimeType, currency string) (*dto.ProductDraft, error) {
	text, err := s.generate(ctx, geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{Text: imagePrompt(currency)},
				{InlineData: &geminiInline{MimeType: mimeType, Data: imageBase64}},
			},
		}},
	})
	if err != nil {
		return nil, err
	}
	return parseProductDraft(text)
}

// generate recorre la cadena de modelos; devuelve el texto del primero que responda o el último error.
func (s *GeminiService) generate(ctx context.Context, payload geminiRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}
	if len(s.models) == 0 {
		return "", fmt.Errorf("AI: no hay modelos Gemini configurados")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	var lastErr error
	for _, model := range s.models {
		text, err := s.call(ctx, model, body)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		s.log.Warn().Err(err).Str("model", model).Msg("modelo falló, probando el siguiente")
		lastErr = err
	}
	return "", fmt.Errorf("AI: todos los modelos fallaron: %w", lastErr)
}

func (s *GeminiService) call(ctx context.Context, model string, body []byte) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("leer respuesta: %w", err)
	}

	var gemResp geminiResponse
	jsonErr := json.Unmarshal(rawBody, &gemResp)
	if resp.StatusCode != http.StatusOK {
		if jsonErr == nil && gemResp.Error != nil {
			return "", fmt.Errorf("Gemini error %d: %s", gemResp.Error.Code, gemResp.Error.Message)
		}
		return "", fmt.Errorf("Gemini HTTP %d", resp.StatusCode)
	}
	if jsonErr != nil {
		return "", fmt.Errorf("deserializar respuesta Gemini: %w", jsonErr)
	}
	if len(gemResp.Candidates) == 0 {
		return "", errors.New("Gemini devolvió respuesta vacía")
	}
	var sb strings.Builder
	for _, p := range gemResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", errors.New("Gemini devolvió respuesta vacía")
	}
	return sb.String(), nil
}
