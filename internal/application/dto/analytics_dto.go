package dto

import "github.com/shopspring/decimal"

// SalesInsightsRequest vendedor a consultar; vacío = el usuario autenticado.
type SalesInsightsRequest struct {
	SellerID string `json:"sellerId"`
}

// MonthlySale ventas de un mes.
type MonthlySale struct {
	Month string          `json:"month"`
	Sales decimal.Decimal `json:"sales"`
}

// MonthlyCarbon emisiones de un mes (kg CO2e).
type MonthlyCarbon struct {
	Month string          `json:"month"`
	CO2   decimal.Decimal `json:"co2"`
}

// CategorySale ingresos de una categoría.
type CategorySale struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// MarketPrice precio de referencia por plataforma.
type MarketPrice struct {
	Platform string          `json:"platform"`
	Price    decimal.Decimal `json:"price"`
}

// SalesInsightsResponse reporte de ventas del vendedor.
type SalesInsightsResponse struct {
	TotalEarnings    decimal.Decimal `json:"totalEarnings"`
	ProductsSold     int             `json:"productsSold"`
	MonthlySales     []MonthlySale   `json:"monthlySales"`
	CarbonEmissions  []MonthlyCarbon `json:"carbonEmissions"`
	SalesByCategory  []CategorySale  `json:"salesByCategory"`
	MarketComparison []MarketPrice   `json:"marketComparison"`
}
