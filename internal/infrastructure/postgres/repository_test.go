package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/greenthread-api/pkg/config"
)

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "", likePattern("   "))
	assert.Equal(t, "%lana%", likePattern(" lana "))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

// ── Integración (requiere TEST_DATABASE_URL) ─────────────────────────────────

func TestOrderRepo_BorrarProductoConservaLineas(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	defer pool.Close()
	_, err = migrations.Apply(ctx, pool)
	require.NoError(t, err)

	users := NewUserRepository(pool)
	products := NewProductRepository(pool)
	orders := NewOrderRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	seller := &entity.User{ID: uuid.NewString(), Name: "S", Email: uuid.NewString() + "@example.com", Role: entity.RoleSeller, PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	buyer := &entity.User{ID: uuid.NewString(), Name: "B", Email: uuid.NewString() + "@example.com", Role: entity.RoleBuyer, PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, users.Create(ctx, seller))
	require.NoError(t, users.Create(ctx, buyer))
	assert.ErrorIs(t, users.Create(ctx, &entity.User{ID: uuid.NewString(), Email: buyer.Email, CreatedAt: now, UpdatedAt: now}), domain.ErrEmailAlreadyExists)

	p := &entity.Product{ID: uuid.NewString(), SellerID: seller.ID, Name: "Jarrón", Price: decimal.NewFromInt(50), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, products.Create(ctx, p))

	pid := p.ID
	o := &entity.Order{
		ID: uuid.NewString(), BuyerID: buyer.ID, Status: entity.OrderStatusPending, PaymentMethod: entity.DefaultPaymentMethod,
		ShippingAddress: "x", CreatedAt: now, UpdatedAt: now,
		Items: []entity.OrderItem{{ID: uuid.NewString(), ProductID: &pid, ProductName: p.Name, Quantity: 2, Price: p.Price}},
	}
	o.TotalAmount = o.ComputeTotal()
	require.NoError(t, orders.Create(ctx, o))

	sold, err := orders.ListBySeller(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, sold, 1)

	require.NoError(t, products.Delete(ctx, p.ID))
	got, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].ProductID)
	assert.True(t, decimal.NewFromInt(100).Equal(got.TotalAmount))
}
