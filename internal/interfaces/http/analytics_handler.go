package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/greenthread-api/internal/application/analytics"
	"github.com/jhoicas/greenthread-api/internal/application/dto"
)

// AnalyticsHandler reporte de ventas del vendedor.
type AnalyticsHandler struct {
	uc *analytics.SalesInsightsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.SalesInsightsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetSalesInsights godoc
// @Summary      Reporte de ventas del vendedor
// @Description  Ganancias, unidades vendidas, ventas y CO2 de los últimos seis meses, ingresos por categoría
// @Description  y comparación de mercado. sellerId vacío = usuario autenticado.
// @Tags         analytics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalesInsightsRequest  false  "sellerId"
// @Success      200   {object}  dto.SalesInsightsResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/analytics/getSalesInsights [post]
func (h *AnalyticsHandler) GetSalesInsights(c *fiber.Ctx) error {
	var in dto.SalesInsightsRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return respondError(c, err)
		}
	}
	out, err := h.uc.Execute(c.UserContext(), GetUserID(c), in.SellerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
