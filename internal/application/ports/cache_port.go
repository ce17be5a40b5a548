package ports

import (
	"context"
	"time"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
)

// InsightsCache caché del reporte de ventas por vendedor.
type InsightsCache interface {
	// Get devuelve (nil, false, nil) si no hay entrada.
	Get(ctx context.Context, sellerID string) (*dto.SalesInsightsResponse, bool, error)
	Set(ctx context.Context, sellerID string, insights *dto.SalesInsightsResponse, ttl time.Duration) error
	Invalidate(ctx context.Context, sellerIDs ...string) error
}

// NopInsightsCache caché deshabilitada: nunca hay hit.
type NopInsightsCache struct{}

func (NopInsightsCache) Get(context.Context, string) (*dto.SalesInsightsResponse, bool, error) {
	return nil, false, nil
}

func (NopInsightsCache) Set(context.Context, string, *dto.SalesInsightsResponse, time.Duration) error {
	return nil
}

func (NopInsightsCache) Invalidate(context.Context, ...string) error { return nil }
