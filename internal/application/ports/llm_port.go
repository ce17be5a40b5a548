package ports

import (
	"context"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
)

// ChatAssistant puerto de salida del asistente conversacional del marketplace.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
type ChatAssistant interface {
	// Chat responde al mensaje del usuario con {message, action, data}.
	// Si el modelo no devuelve JSON, el adaptador responde con el texto y action NONE.
	Chat(ctx context.Context, message string, history []dto.ChatTurn) (*dto.ChatResponse, error)
}

// ImageAnalyzer puerto de salida que sugiere un borrador de producto a partir de una foto.
type ImageAnalyzer interface {
	// AnalyzeImage recibe la imagen en base64 puro (sin prefijo data URL) y su MIME type.
	// El precio sugerido viene expresado en currency.
	AnalyzeImage(ctx context.Context, imageBase64, mimeType, currency string) (*dto.ProductDraft, error)
}
