// Package carbon implementa el puerto CarbonEstimator.
package carbon

import (
	"context"

	"github.com/jhoicas/greenthread-api/internal/application/ports"
)

// Coeficientes de la fórmula lineal (kg CO2e).
const (
	kgCO2PerMaterialKg = 2.5
	kgCO2PerKwh        = 0.4
)

var _ ports.CarbonEstimator = LinearEstimator{}

// LinearEstimator material_kg*2.5 + energy_kwh*0.4. No falla nunca.
type LinearEstimator struct{}

// Estimate aplica la fórmula; ignora transporte, peso, reciclado, material y tipo de producción.
func (LinearEstimator) Estimate(_ context.Context, in ports.CarbonInput) (*ports.CarbonEstimate, error) {
	return &ports.CarbonEstimate{
		CarbonEmission: in.MaterialQuantityKg*kgCO2PerMaterialKg + in.EnergyUsedKwh*kgCO2PerKwh,
		Source:         ports.CarbonSourceLinear,
	}, nil
}
