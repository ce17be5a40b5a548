package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
	"github.com/jhoicas/greenthread-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var ctx = context.Background()

func seedUser(t *testing.T, s *memory.Store, id, email, role string) {
	t.Helper()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: id, Email: email, Name: id, Role: role}))
}

func seedProduct(t *testing.T, s *memory.Store, id, sellerID, price string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: id, SellerID: sellerID, Name: "prod " + id, Category: "Textiles",
		Price: decimal.RequireFromString(price), CreatedAt: createdAt, UpdatedAt: createdAt,
	}))
}

func seedOrder(t *testing.T, s *memory.Store, id, buyerID string, createdAt time.Time, productIDs ...string) {
	t.Helper()
	o := &entity.Order{ID: id, BuyerID: buyerID, Status: entity.OrderStatusPending, CreatedAt: createdAt}
	for _, pid := range productIDs {
		pid := pid
		o.Items = append(o.Items, entity.OrderItem{ID: id + "-" + pid, ProductID: &pid, Quantity: 1, Price: decimal.NewFromInt(10)})
	}
	require.NoError(t, s.Orders().Create(ctx, o))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "u1", "ana@example.com", entity.RoleBuyer)

	err := s.Users().Create(ctx, &entity.User{ID: "u2", Email: "ANA@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := s.Users().GetByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}

func TestUserRepo_DireccionesEnOrdenDeInsercion(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "u1", "a@x.com", entity.RoleBuyer)

	require.NoError(t, s.Users().AddAddress(ctx, &entity.Address{ID: "a1", UserID: "u1", Street: "uno"}))
	require.NoError(t, s.Users().AddAddress(ctx, &entity.Address{ID: "a2", UserID: "u1", Street: "dos"}))

	list, err := s.Users().ListAddresses(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a1", list[0].ID)
	assert.Equal(t, "a2", list[1].ID)

	err = s.Users().AddAddress(ctx, &entity.Address{ID: "a3", UserID: "nadie"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProductRepo_UpdateNoCambiaVendedor(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "seller", "s@x.com", entity.RoleSeller)
	seedProduct(t, s, "p1", "seller", "50", time.Now())

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	p.SellerID = "otro"
	p.Price = decimal.NewFromInt(80)
	require.NoError(t, s.Products().Update(ctx, p))

	got, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "seller", got.SellerID)
	assert.True(t, decimal.NewFromInt(80).Equal(got.Price))
}

func TestProductRepo_DeleteDejaLineasSinProducto(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "seller", "s@x.com", entity.RoleSeller)
	seedUser(t, s, "buyer", "b@x.com", entity.RoleBuyer)
	seedProduct(t, s, "p1", "seller", "50", time.Now())
	seedOrder(t, s, "o1", "buyer", time.Now(), "p1")

	require.NoError(t, s.Products().Delete(ctx, "p1"))

	o, err := s.Orders().GetByID(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Nil(t, o.Items[0].ProductID)
	assert.True(t, decimal.NewFromInt(10).Equal(o.Items[0].Price))

	assert.ErrorIs(t, s.Products().Delete(ctx, "p1"), domain.ErrProductNotFound)
}

func TestProductRepo_ListConFiltroYVendedor(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "seller", "s@x.com", entity.RoleSeller)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProduct(t, s, "p1", "seller", "10", base)
	seedProduct(t, s, "p2", "seller", "20", base.Add(time.Hour))

	list, err := s.Products().List(ctx, entity.ProductFilter{Category: "textiles", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ID, "más reciente primero")
	assert.Equal(t, "s@x.com", list[0].Seller.Email)

	page, err := s.Products().List(ctx, entity.ProductFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "p1", page[0].ID)
}

func TestOrderRepo_ListadosDelMasRecienteAlMasAntiguo(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "seller", "s@x.com", entity.RoleSeller)
	seedUser(t, s, "other", "o@x.com", entity.RoleSeller)
	seedUser(t, s, "buyer", "b@x.com", entity.RoleBuyer)
	now := time.Now()
	seedProduct(t, s, "p1", "seller", "10", now)
	seedProduct(t, s, "p2", "other", "10", now)
	seedOrder(t, s, "viejo", "buyer", now.Add(-time.Hour), "p1")
	seedOrder(t, s, "nuevo", "buyer", now, "p2", "p1")
	seedOrder(t, s, "ajeno", "buyer", now, "p2")

	byBuyer, err := s.Orders().ListByBuyer(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, byBuyer, 3)
	assert.Equal(t, "viejo", byBuyer[2].ID)

	bySeller, err := s.Orders().ListBySeller(ctx, "seller")
	require.NoError(t, err)
	require.Len(t, bySeller, 2)
	assert.Equal(t, "nuevo", bySeller[0].ID)
	assert.Equal(t, "viejo", bySeller[1].ID)

	none, err := s.Orders().ListContainingProducts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTxRunner_RollbackDescartaOrden(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "buyer", "b@x.com", entity.RoleBuyer)
	boom := errors.New("boom")

	err := s.TxRunner().RunOrder(ctx, func(_ repository.ProductRepository, orders repository.OrderRepository) error {
		require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o1", BuyerID: "buyer"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	o, err := s.Orders().GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestTxRunner_ProductoBorradoAntesDelCommitQuedaSinReferencia(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "seller", "s@x.com", entity.RoleSeller)
	seedUser(t, s, "buyer", "b@x.com", entity.RoleBuyer)
	seedProduct(t, s, "p1", "seller", "50", time.Now())
	seedProduct(t, s, "p2", "seller", "20", time.Now())

	err := s.TxRunner().RunOrder(ctx, func(products repository.ProductRepository, orders repository.OrderRepository) error {
		p1, p2 := "p1", "p2"
		require.NoError(t, orders.Create(ctx, &entity.Order{
			ID: "o1", BuyerID: "buyer", Status: entity.OrderStatusPending, CreatedAt: time.Now(),
			Items: []entity.OrderItem{
				{ID: "i1", ProductID: &p1, Quantity: 1, Price: decimal.NewFromInt(50)},
				{ID: "i2", ProductID: &p2, Quantity: 2, Price: decimal.NewFromInt(20)},
			},
		}))
		// Borrado concurrente antes de que se apliquen las órdenes pendientes.
		return products.Delete(ctx, "p1")
	})
	require.NoError(t, err)

	o, err := s.Orders().GetByID(ctx, "o1")
	require.NoError(t, err)
	require.NotNil(t, o)
	require.Len(t, o.Items, 2)
	assert.Nil(t, o.Items[0].ProductID)
	assert.True(t, decimal.NewFromInt(50).Equal(o.Items[0].Price))
	require.NotNil(t, o.Items[1].ProductID)
	assert.Equal(t, "p2", *o.Items[1].ProductID)
	assert.Equal(t, []string{"p2"}, o.ProductIDs())
}
