package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
)

// jsonBlockRe captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON quita los bloques markdown (```json … ```) y devuelve el primer objeto JSON del texto.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// parseChatResponse interpreta la salida del modelo. Si no es JSON, el texto completo va como mensaje con action NONE.
func parseChatResponse(text string) *dto.ChatResponse {
	var out dto.ChatResponse
	if raw := extractJSON(text); raw != "" {
		if err := json.Unmarshal([]byte(raw), &out); err == nil && out.Message != "" {
			if out.Action == "" {
				out.Action = dto.ChatActionNone
			}
			if string(out.Data) == "null" {
				out.Data = nil
			}
			return &out
		}
	}
	return &dto.ChatResponse{Message: strings.TrimSpace(text), Action: dto.ChatActionNone}
}

// parseProductDraft exige JSON válido: un borrador a medias no sirve al formulario del vendedor.
func parseProductDraft(text string) (*dto.ProductDraft, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo (respuesta: %s)", text)
	}
	var draft dto.ProductDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("AI: parsear borrador de producto: %w (JSON extraído: %s)", err, raw)
	}
	return &draft, nil
}
