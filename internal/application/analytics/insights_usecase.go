// Package analytics contiene el caso de uso del reporte de ventas del vendedor.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
	"github.com/jhoicas/greenthread-api/internal/domain/sales"
	"github.com/jhoicas/greenthread-api/pkg/logger"
)

// SalesInsightsUseCase genera el reporte de ventas del vendedor.
//
// Fuente de datos: productos del vendedor + órdenes que los contienen.
// La agregación vive en domain/sales; aquí solo se orquesta la lectura y la caché.
type SalesInsightsUseCase struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	cache    ports.InsightsCache
	ttl      time.Duration
	log      *logger.Logger
	now      func() time.Time
}

// NewSalesInsightsUseCase construye el caso de uso. cache y log pueden ser nil; ttl <= 0 desactiva la escritura en caché.
func NewSalesInsightsUseCase(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	cache ports.InsightsCache,
	ttl time.Duration,
	log *logger.Logger,
) *SalesInsightsUseCase {
	if cache == nil {
		cache = ports.NopInsightsCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SalesInsightsUseCase{
		products: products,
		orders:   orders,
		cache:    cache,
		ttl:      ttl,
		log:      log.Component("analytics"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *SalesInsightsUseCase) WithClock(now func() time.Time) *SalesInsightsUseCase {
	uc.now = now
	return uc
}

// Execute devuelve el reporte de sellerID (vacío = el llamante). Solo el propio vendedor puede consultarlo.
func (uc *SalesInsightsUseCase) Execute(ctx context.Context, callerID, sellerID string) (*dto.SalesInsightsResponse, error) {
	if sellerID == "" {
		sellerID = callerID
	}
	if sellerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if sellerID != callerID {
		return nil, domain.ErrForbidden
	}

	cached, ok, err := uc.cache.Get(ctx, sellerID)
	if err != nil {
		uc.log.Warn().Err(err).Str("seller_id", sellerID).Msg("caché: lectura fallida, se recalcula")
	} else if ok {
		return cached, nil
	}

	out, err := uc.compute(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if uc.ttl > 0 {
		if err := uc.cache.Set(ctx, sellerID, out, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("seller_id", sellerID).Msg("caché: escritura fallida")
		}
	}
	return out, nil
}

func (uc *SalesInsightsUseCase) compute(ctx context.Context, sellerID string) (*dto.SalesInsightsResponse, error) {
	products, err := uc.products.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("productos del vendedor: %w", err)
	}
	facts := sales.FactsFromProducts(products)
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	orders, err := uc.orders.ListContainingProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("órdenes del vendedor: %w", err)
	}
	return toInsightsResponse(sales.Aggregate(uc.now(), facts, orders)), nil
}

func toInsightsResponse(in sales.Insights) *dto.SalesInsightsResponse {
	out := &dto.SalesInsightsResponse{
		TotalEarnings:    in.TotalEarnings,
		ProductsSold:     in.ProductsSold,
		MonthlySales:     make([]dto.MonthlySale, 0, len(in.MonthlySales)),
		CarbonEmissions:  make([]dto.MonthlyCarbon, 0, len(in.CarbonEmissions)),
		SalesByCategory:  make([]dto.CategorySale, 0, len(in.SalesByCategory)),
		MarketComparison: make([]dto.MarketPrice, 0, len(in.MarketComparison)),
	}
	for _, m := range in.MonthlySales {
		out.MonthlySales = append(out.MonthlySales, dto.MonthlySale{Month: m.Month, Sales: m.Amount})
	}
	for _, m := range in.CarbonEmissions {
		out.CarbonEmissions = append(out.CarbonEmissions, dto.MonthlyCarbon{Month: m.Month, CO2: m.Amount})
	}
	for _, c := range in.SalesByCategory {
		out.SalesByCategory = append(out.SalesByCategory, dto.CategorySale{Name: c.Name, Value: c.Value})
	}
	for _, p := range in.MarketComparison {
		out.MarketComparison = append(out.MarketComparison, dto.MarketPrice{Platform: p.Platform, Price: p.Price})
	}
	return out
}
