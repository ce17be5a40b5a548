package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenthread-api/internal/application/analytics"
	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/infrastructure/memory"
)

var (
	ctx = context.Background()
	now = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
)

// mapCache caché en memoria para los tests.
type mapCache struct {
	data   map[string]*dto.SalesInsightsResponse
	getErr error
	sets   int
}

func newMapCache() *mapCache { return &mapCache{data: map[string]*dto.SalesInsightsResponse{}} }

func (c *mapCache) Get(_ context.Context, id string) (*dto.SalesInsightsResponse, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[id]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, id string, v *dto.SalesInsightsResponse, _ time.Duration) error {
	c.sets++
	c.data[id] = v
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, ids ...string) error {
	for _, id := range ids {
		delete(c.data, id)
	}
	return nil
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	for _, u := range []*entity.User{
		{ID: "b1", Name: "Comprador", Email: "b1@example.com", Role: entity.RoleBuyer},
		{ID: "s1", Name: "Vendedora", Email: "s1@example.com", Role: entity.RoleSeller},
		{ID: "s2", Name: "Otro", Email: "s2@example.com", Role: entity.RoleSeller},
	} {
		require.NoError(t, store.Users().Create(ctx, u))
	}
	products := []*entity.Product{
		{ID: "scarf", SellerID: "s1", Name: "Scarf", Category: "Textiles", Price: decimal.NewFromInt(40),
			CarbonFootprint: decimal.NewNullDecimal(decimal.RequireFromString("1.5"))},
		{ID: "bowl", SellerID: "s1", Name: "Bowl", Category: "Pottery", Price: decimal.NewFromInt(25)},
		{ID: "rug", SellerID: "s2", Name: "Rug", Category: "Textiles", Price: decimal.NewFromInt(300)},
	}
	for _, p := range products {
		require.NoError(t, store.Products().Create(ctx, p))
	}
	pid := func(s string) *string { return &s }
	orders := []*entity.Order{
		{ID: "o1", BuyerID: "b1", Status: entity.OrderStatusPaid, CreatedAt: now.AddDate(0, -1, 0), Items: []entity.OrderItem{
			{ID: "i1", ProductID: pid("scarf"), Quantity: 2, Price: decimal.NewFromInt(40)},
			{ID: "i2", ProductID: pid("rug"), Quantity: 1, Price: decimal.NewFromInt(300)},
		}},
		{ID: "o2", BuyerID: "b1", Status: entity.OrderStatusPending, CreatedAt: now, Items: []entity.OrderItem{
			{ID: "i3", ProductID: pid("bowl"), Quantity: 1, Price: decimal.NewFromInt(25)},
		}},
	}
	for _, o := range orders {
		o.TotalAmount = o.ComputeTotal()
		require.NoError(t, store.Orders().Create(ctx, o))
	}
	return store
}

func TestSalesInsights_SoloVentasDelVendedor(t *testing.T) {
	store := seed(t)
	uc := analytics.NewSalesInsightsUseCase(store.Products(), store.Orders(), nil, 0, nil).
		WithClock(func() time.Time { return now })

	out, err := uc.Execute(ctx, "s1", "")
	require.NoError(t, err)

	assert.Equal(t, "105", out.TotalEarnings.String())
	assert.Equal(t, 3, out.ProductsSold)
	require.Len(t, out.MonthlySales, 6)
	assert.Equal(t, "May", out.MonthlySales[0].Month)
	assert.Equal(t, "Sep", out.MonthlySales[4].Month)
	assert.Equal(t, "80", out.MonthlySales[4].Sales.String())
	assert.Equal(t, "25", out.MonthlySales[5].Sales.String())
	assert.Equal(t, "3", out.CarbonEmissions[4].CO2.String())
	assert.Equal(t, "0", out.CarbonEmissions[5].CO2.String())
	require.Len(t, out.SalesByCategory, 2)
	assert.Equal(t, "Textiles", out.SalesByCategory[0].Name)
	assert.Equal(t, "80", out.SalesByCategory[0].Value.String())
	assert.Len(t, out.MarketComparison, 3)
}

func TestSalesInsights_OtroVendedorProhibido(t *testing.T) {
	store := seed(t)
	uc := analytics.NewSalesInsightsUseCase(store.Products(), store.Orders(), nil, 0, nil)

	_, err := uc.Execute(ctx, "s2", "s1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSalesInsights_VendedorSinProductos(t *testing.T) {
	store := seed(t)
	uc := analytics.NewSalesInsightsUseCase(store.Products(), store.Orders(), nil, 0, nil).
		WithClock(func() time.Time { return now })

	out, err := uc.Execute(ctx, "b1", "b1")
	require.NoError(t, err)
	assert.True(t, out.TotalEarnings.IsZero())
	assert.Zero(t, out.ProductsSold)
	assert.Len(t, out.MonthlySales, 6)
	assert.Empty(t, out.SalesByCategory)
}

func TestSalesInsights_UsaCacheHastaInvalidar(t *testing.T) {
	store := seed(t)
	cache := newMapCache()
	uc := analytics.NewSalesInsightsUseCase(store.Products(), store.Orders(), cache, time.Minute, nil).
		WithClock(func() time.Time { return now })

	first, err := uc.Execute(ctx, "s1", "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	require.NoError(t, store.Products().Delete(ctx, "bowl"))
	second, err := uc.Execute(ctx, "s1", "s1")
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, cache.Invalidate(ctx, "s1"))
	third, err := uc.Execute(ctx, "s1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "80", third.TotalEarnings.String())
}

func TestSalesInsights_FalloDeCacheRecalcula(t *testing.T) {
	store := seed(t)
	cache := newMapCache()
	cache.getErr = errors.New("redis caído")
	uc := analytics.NewSalesInsightsUseCase(store.Products(), store.Orders(), cache, time.Minute, nil).
		WithClock(func() time.Time { return now })

	out, err := uc.Execute(ctx, "s1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "105", out.TotalEarnings.String())
}
