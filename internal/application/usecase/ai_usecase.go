package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/internal/domain"
)

const (
	defaultCurrency  = "USD"
	defaultImageMIME = "image/jpeg"
)

// AIUseCase asistente conversacional y análisis de fotos de producto.
// Cada llamada al proveedor lleva su propio timeout.
type AIUseCase struct {
	chat    ports.ChatAssistant
	images  ports.ImageAnalyzer
	timeout time.Duration
}

// NewAIUseCase construye el caso de uso inyectando los puertos de IA.
func NewAIUseCase(chat ports.ChatAssistant, images ports.ImageAnalyzer) *AIUseCase {
	return &AIUseCase{chat: chat, images: images, timeout: 30 * time.Second}
}

// Chat valida el mensaje y delega al asistente.
func (uc *AIUseCase) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, fmt.Errorf("%w: message es obligatorio", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	out, err := uc.chat.Chat(ctx, msg, req.History)
	if err != nil {
		return nil, fmt.Errorf("chat IA: %w", err)
	}
	if out.Action == "" {
		out.Action = dto.ChatActionNone
	}
	return out, nil
}

// AnalyzeImage acepta base64 puro o data URL ("data:image/png;base64,...").
func (uc *AIUseCase) AnalyzeImage(ctx context.Context, req dto.AnalyzeImageRequest) (*dto.ProductDraft, error) {
	data, mime := splitDataURL(req.Image)
	if data == "" {
		return nil, fmt.Errorf("%w: image es obligatorio", domain.ErrInvalidInput)
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return nil, fmt.Errorf("%w: image no es base64 válido", domain.ErrInvalidInput)
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	draft, err := uc.images.AnalyzeImage(ctx, data, mime, currency)
	if err != nil {
		return nil, fmt.Errorf("análisis de imagen IA: %w", err)
	}
	return draft, nil
}

// splitDataURL separa el MIME type y el contenido base64 de una data URL.
func splitDataURL(s string) (data, mime string) {
	s = strings.TrimSpace(s)
	mime = defaultImageMIME
	if !strings.HasPrefix(s, "data:") {
		return s, mime
	}
	header, payload, ok := strings.Cut(s, ",")
	if !ok {
		return "", mime
	}
	header = strings.TrimPrefix(header, "data:")
	if m, _, _ := strings.Cut(header, ";"); m != "" {
		mime = m
	}
	return payload, mime
}
