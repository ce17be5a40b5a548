package ports

import "context"

// Fuentes posibles de una estimación de carbono.
const (
	CarbonSourceLinear = "linear_formula"
	CarbonSourceScript = "python_model"
)

// CarbonInput atributos de fabricación usados para estimar la huella.
type CarbonInput struct {
	MaterialQuantityKg      float64 `json:"material_quantity_kg"`
	EnergyUsedKwh           float64 `json:"energy_used_kwh"`
	TransportDistanceKm     float64 `json:"transport_distance_km"`
	ProductWeightKg         float64 `json:"product_weight_kg"`
	RecycledMaterialPercent float64 `json:"recycled_material_percent"`
	PrimaryMaterial         string  `json:"primary_material"`
	ProductionType          string  `json:"production_type"`
}

// CarbonEstimate kg CO2e estimados.
type CarbonEstimate struct {
	CarbonEmission float64
	Source         string
}

// CarbonEstimator puerto de salida para la estimación de huella de carbono.
type CarbonEstimator interface {
	Estimate(ctx context.Context, in CarbonInput) (*CarbonEstimate, error)
}
