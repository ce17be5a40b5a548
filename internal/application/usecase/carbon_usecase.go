package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/internal/domain"
)

// CarbonUseCase estimación de huella de carbono de un producto.
type CarbonUseCase struct {
	estimator ports.CarbonEstimator
}

// NewCarbonUseCase construye el caso de uso.
func NewCarbonUseCase(estimator ports.CarbonEstimator) *CarbonUseCase {
	return &CarbonUseCase{estimator: estimator}
}

// Estimate exige los siete atributos y delega al estimador configurado.
func (uc *CarbonUseCase) Estimate(ctx context.Context, in dto.CarbonEstimateRequest) (*dto.CarbonEstimateResponse, error) {
	if in.MaterialQuantityKg == nil || in.EnergyUsedKwh == nil || in.TransportDistanceKm == nil ||
		in.ProductWeightKg == nil || in.RecycledMaterialPercent == nil ||
		strings.TrimSpace(in.PrimaryMaterial) == "" || strings.TrimSpace(in.ProductionType) == "" {
		return nil, fmt.Errorf("%w: faltan campos para la estimación de carbono", domain.ErrInvalidInput)
	}
	est, err := uc.estimator.Estimate(ctx, ports.CarbonInput{
		MaterialQuantityKg:      *in.MaterialQuantityKg,
		EnergyUsedKwh:           *in.EnergyUsedKwh,
		TransportDistanceKm:     *in.TransportDistanceKm,
		ProductWeightKg:         *in.ProductWeightKg,
		RecycledMaterialPercent: *in.RecycledMaterialPercent,
		PrimaryMaterial:         strings.TrimSpace(in.PrimaryMaterial),
		ProductionType:          strings.TrimSpace(in.ProductionType),
	})
	if err != nil {
		return nil, fmt.Errorf("estimación de carbono: %w", err)
	}
	return &dto.CarbonEstimateResponse{CarbonEmission: est.CarbonEmission, Source: est.Source}, nil
}
