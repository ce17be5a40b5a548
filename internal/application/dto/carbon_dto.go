package dto

// CarbonEstimateRequest atributos de fabricación del producto. Los siete campos son obligatorios.
type CarbonEstimateRequest struct {
	MaterialQuantityKg      *float64 `json:"material_quantity_kg" validate:"required,gte=0"`
	EnergyUsedKwh           *float64 `json:"energy_used_kwh" validate:"required,gte=0"`
	TransportDistanceKm     *float64 `json:"transport_distance_km" validate:"required,gte=0"`
	ProductWeightKg         *float64 `json:"product_weight_kg" validate:"required,gte=0"`
	RecycledMaterialPercent *float64 `json:"recycled_material_percent" validate:"required,gte=0,lte=100"`
	PrimaryMaterial         string   `json:"primary_material" validate:"required,max=120"`
	ProductionType          string   `json:"production_type" validate:"required,max=120"`
}

// CarbonEstimateResponse huella estimada en kg CO2e y el método que la produjo.
type CarbonEstimateResponse struct {
	CarbonEmission float64 `json:"carbon_emission"`
	Source         string  `json:"source"`
}
