package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Acciones que el asistente puede pedirle al frontend.
const (
	ChatActionRegister       = "REGISTER_USER_INTENT"
	ChatActionLogin          = "LOGIN_USER_INTENT"
	ChatActionSearchProducts = "SEARCH_PRODUCTS"
	ChatActionNavigate       = "NAVIGATE"
	ChatActionNone           = "NONE"
)

// ChatTurn mensaje previo de la conversación. Sender "bot" = modelo; cualquier otro = usuario.
type ChatTurn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// ChatRequest entrada del asistente conversacional.
type ChatRequest struct {
	Message string     `json:"message" validate:"required,max=4000"`
	History []ChatTurn `json:"history" validate:"max=50"`
}

// ChatResponse respuesta estructurada del asistente.
type ChatResponse struct {
	Message string          `json:"message"`
	Action  string          `json:"action"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// AnalyzeImageRequest imagen en base64 (con o sin prefijo data URL).
type AnalyzeImageRequest struct {
	Image    string `json:"image" validate:"required"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// ProductDraft borrador de producto sugerido a partir de la foto.
type ProductDraft struct {
	Name        string          `json:"name"`
	Material    string          `json:"material"`
	Region      string          `json:"region"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}
