package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/usecase"
	"github.com/jhoicas/greenthread-api/internal/domain"
)

// Respuesta del asistente cuando el proveedor de IA no responde.
const chatFallbackMessage = "Sorry, I'm having trouble connecting to my brain right now."

// AIHandler asistente conversacional y borrador de producto a partir de una foto.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Chat godoc
// @Summary      Asistente del marketplace
// @Description  Responde {message, action, data}. action indica al frontend qué hacer
// @Description  (REGISTER_USER_INTENT, LOGIN_USER_INTENT, SEARCH_PRODUCTS, NAVIGATE, NONE).
// @Description  Si el proveedor de IA falla responde 503 con un mensaje de disculpa y action NONE.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Mensaje e historial"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ChatResponse
// @Router       /api/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Chat(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return respondError(c, err)
		}
		c.Locals(LocalError, err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ChatResponse{
			Message: chatFallbackMessage,
			Action:  dto.ChatActionNone,
		})
	}
	return c.JSON(out)
}

// AnalyzeImage godoc
// @Summary      Borrador de producto a partir de una foto
// @Description  Acepta base64 puro o data URL. El precio sugerido viene en currency (USD por defecto).
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AnalyzeImageRequest  true  "image, currency"
// @Success      200   {object}  dto.ProductDraft
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ai/analyze-image [post]
func (h *AIHandler) AnalyzeImage(c *fiber.Ctx) error {
	var in dto.AnalyzeImageRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AnalyzeImage(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return respondError(c, err)
		}
		c.Locals(LocalError, err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "AI_UNAVAILABLE", Message: "no se pudo analizar la imagen",
		})
	}
	return c.JSON(out)
}
