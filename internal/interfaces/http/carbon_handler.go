package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/usecase"
)

// CarbonHandler estimación de huella de carbono.
type CarbonHandler struct {
	uc *usecase.CarbonUseCase
}

// NewCarbonHandler construye el handler.
func NewCarbonHandler(uc *usecase.CarbonUseCase) *CarbonHandler {
	return &CarbonHandler{uc: uc}
}

// Predict godoc
// @Summary      Estimar huella de carbono
// @Description  Los siete campos son obligatorios (cero es un valor válido). source indica el método usado.
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CarbonEstimateRequest  true  "Atributos de fabricación"
// @Success      200   {object}  dto.CarbonEstimateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/predict/carbon [post]
func (h *CarbonHandler) Predict(c *fiber.Ctx) error {
	var in dto.CarbonEstimateRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Estimate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
