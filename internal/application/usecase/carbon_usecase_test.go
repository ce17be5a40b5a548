package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/internal/application/usecase"
	"github.com/jhoicas/greenthread-api/internal/domain"
)

type fixedEstimator struct {
	got ports.CarbonInput
}

func (f *fixedEstimator) Estimate(_ context.Context, in ports.CarbonInput) (*ports.CarbonEstimate, error) {
	f.got = in
	return &ports.CarbonEstimate{CarbonEmission: 7.5, Source: "fijo"}, nil
}

func f64(v float64) *float64 { return &v }

func TestCarbonUseCase_AceptaCerosExplicitos(t *testing.T) {
	est := &fixedEstimator{}
	uc := usecase.NewCarbonUseCase(est)

	out, err := uc.Estimate(context.Background(), dto.CarbonEstimateRequest{
		MaterialQuantityKg: f64(2), EnergyUsedKwh: f64(5), TransportDistanceKm: f64(0),
		ProductWeightKg: f64(1.5), RecycledMaterialPercent: f64(0),
		PrimaryMaterial: " wood ", ProductionType: "Handmade",
	})
	require.NoError(t, err)
	assert.Equal(t, 7.5, out.CarbonEmission)
	assert.Equal(t, "fijo", out.Source)
	assert.Equal(t, "wood", est.got.PrimaryMaterial)
}

func TestCarbonUseCase_CampoFaltante(t *testing.T) {
	uc := usecase.NewCarbonUseCase(&fixedEstimator{})
	_, err := uc.Estimate(context.Background(), dto.CarbonEstimateRequest{
		MaterialQuantityKg: f64(2), EnergyUsedKwh: f64(5),
		PrimaryMaterial: "wood", ProductionType: "Handmade",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
