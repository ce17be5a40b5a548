package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/orders"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

var ctx = context.Background()

type recordingCache struct {
	ports.NopInsightsCache
	invalidated []string
}

func (c *recordingCache) Invalidate(_ context.Context, ids ...string) error {
	c.invalidated = append(c.invalidated, ids...)
	return nil
}

type recordingAudit struct {
	entries []ports.AuditEntry
}

func (a *recordingAudit) Record(_ context.Context, e ports.AuditEntry) error {
	a.entries = append(a.entries, e)
	return nil
}

type stubReceipt struct {
	order *entity.Order
	buyer *entity.User
}

func (s *stubReceipt) GenerateReceiptPDF(_ context.Context, o *entity.Order, b *entity.User) ([]byte, error) {
	s.order, s.buyer = o, b
	return []byte("%PDF-1.3 stub"), nil
}

func addUser(t *testing.T, store *memory.Store, id, role string) {
	t.Helper()
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: id, Name: "Usuario " + id, Email: id + "@example.com", Role: role, CreatedAt: time.Now(),
	}))
}

func addProduct(t *testing.T, store *memory.Store, id, sellerID, price string) {
	t.Helper()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: id, SellerID: sellerID, Name: "Producto " + id, Category: "Textiles",
		Price: decimal.RequireFromString(price), Stock: 10, CreatedAt: time.Now(),
	}))
}

func setup(t *testing.T) (*memory.Store, *orders.PlaceOrderUseCase, *recordingCache, *recordingAudit) {
	t.Helper()
	store := memory.NewStore()
	addUser(t, store, "b1", entity.RoleBuyer)
	addUser(t, store, "s1", entity.RoleSeller)
	addUser(t, store, "s2", entity.RoleSeller)
	addProduct(t, store, "p1", "s1", "50")
	addProduct(t, store, "p2", "s2", "12.25")
	cache := &recordingCache{}
	audit := &recordingAudit{}
	uc := orders.NewPlaceOrderUseCase(store.TxRunner(), store.Users(), cache, audit, nil)
	return store, uc, cache, audit
}

func place(t *testing.T, uc *orders.PlaceOrderUseCase, lines ...dto.OrderLineRequest) *dto.OrderResponse {
	t.Helper()
	out, err := uc.Execute(ctx, "b1", dto.PlaceOrderRequest{Items: lines, ShippingAddress: "12 Loom St, Jaipur"})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// PlaceOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_TotalYValoresPorDefecto(t *testing.T) {
	_, uc, cache, audit := setup(t)

	out := place(t, uc,
		dto.OrderLineRequest{ProductID: "p1", Quantity: 2},
		dto.OrderLineRequest{ProductID: "p2", Quantity: 1},
	)

	assert.Equal(t, "112.25", out.TotalAmount.String())
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.Equal(t, entity.DefaultPaymentMethod, out.PaymentMethod)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "100", out.Items[0].Subtotal.String())
	assert.ElementsMatch(t, []string{"s1", "s2"}, cache.invalidated)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, ports.AuditOrderCreated, audit.entries[0].Action)
}

func TestPlaceOrder_PrecioCongeladoAnteCambiosDelProducto(t *testing.T) {
	store, uc, _, _ := setup(t)
	out := place(t, uc, dto.OrderLineRequest{ProductID: "p1", Quantity: 1})

	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	p.Price = decimal.NewFromInt(80)
	require.NoError(t, store.Products().Update(ctx, p))

	q := orders.NewQueryUseCase(store.Orders(), store.Products())
	got, err := q.GetOrder(ctx, "b1", out.ID)
	require.NoError(t, err)
	assert.Equal(t, "50", got.Items[0].Price.String())
	assert.Equal(t, "50", got.TotalAmount.String())
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "80", got.Items[0].Product.Price.String())
}

func TestPlaceOrder_ProductoInexistenteRechazaLaOrden(t *testing.T) {
	store, uc, _, audit := setup(t)

	_, err := uc.Execute(ctx, "b1", dto.PlaceOrderRequest{
		Items: []dto.OrderLineRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "no-existe", Quantity: 1},
		},
		ShippingAddress: "x",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	list, err := store.Orders().ListByBuyer(ctx, "b1")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, audit.entries)
}

func TestPlaceOrder_LineasDuplicadasSeConservan(t *testing.T) {
	_, uc, _, _ := setup(t)
	out := place(t, uc,
		dto.OrderLineRequest{ProductID: "p1", Quantity: 1},
		dto.OrderLineRequest{ProductID: "p1", Quantity: 3},
	)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "200", out.TotalAmount.String())
}

func TestPlaceOrder_DireccionGuardada(t *testing.T) {
	store, uc, _, _ := setup(t)
	require.NoError(t, store.Users().AddAddress(ctx, &entity.Address{
		ID: "a1", UserID: "b1", Street: "4 Indigo Rd", City: "Udaipur", Zip: "313001",
	}))

	out, err := uc.Execute(ctx, "b1", dto.PlaceOrderRequest{
		Items:     []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
		AddressID: "a1",
		Status:    entity.OrderStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, "4 Indigo Rd, Udaipur, 313001", out.ShippingAddress)
	assert.Equal(t, entity.OrderStatusPaid, out.Status)
}

func TestPlaceOrder_DireccionAjena(t *testing.T) {
	_, uc, _, _ := setup(t)
	_, err := uc.Execute(ctx, "b1", dto.PlaceOrderRequest{
		Items:     []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}},
		AddressID: "a-desconocida",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlaceOrder_Validaciones(t *testing.T) {
	_, uc, _, _ := setup(t)

	cases := []struct {
		name string
		in   dto.PlaceOrderRequest
		want error
	}{
		{"sin líneas", dto.PlaceOrderRequest{ShippingAddress: "x"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.PlaceOrderRequest{Items: []dto.OrderLineRequest{{ProductID: "p1"}}, ShippingAddress: "x"}, domain.ErrInvalidInput},
		{"sin dirección", dto.PlaceOrderRequest{Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}}}, domain.ErrInvalidInput},
		{"estado inicial inválido", dto.PlaceOrderRequest{Items: []dto.OrderLineRequest{{ProductID: "p1", Quantity: 1}}, ShippingAddress: "x", Status: "Shipped"}, domain.ErrInvalidStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, "b1", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas, estado y comprobante
// ──────────────────────────────────────────────────────────────────────────────

func TestQueries_ListadosSoloDelPropioUsuario(t *testing.T) {
	store, uc, _, _ := setup(t)
	place(t, uc, dto.OrderLineRequest{ProductID: "p1", Quantity: 1})
	place(t, uc, dto.OrderLineRequest{ProductID: "p2", Quantity: 1})
	q := orders.NewQueryUseCase(store.Orders(), store.Products())

	mine, err := q.ListBuyerOrders(ctx, "b1", "b1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = q.ListBuyerOrders(ctx, "s1", "b1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	sold, err := q.ListSellerOrders(ctx, "s1", "s1")
	require.NoError(t, err)
	require.Len(t, sold, 1)
	assert.Equal(t, "p1", *sold[0].Items[0].ProductID)
}

func TestQueries_GetOrderVendedorNoInvolucrado(t *testing.T) {
	store, uc, _, _ := setup(t)
	out := place(t, uc, dto.OrderLineRequest{ProductID: "p1", Quantity: 1})
	q := orders.NewQueryUseCase(store.Orders(), store.Products())

	_, err := q.GetOrder(ctx, "s2", out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = q.GetOrder(ctx, "s1", out.ID)
	assert.NoError(t, err)
}

func TestQueries_ProductoEliminadoQuedaSinResumen(t *testing.T) {
	store, uc, _, _ := setup(t)
	out := place(t, uc, dto.OrderLineRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, store.Products().Delete(ctx, "p1"))

	q := orders.NewQueryUseCase(store.Orders(), store.Products())
	got, err := q.GetOrder(ctx, "b1", out.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Items[0].ProductID)
	assert.Nil(t, got.Items[0].Product)
	assert.Equal(t, "Producto p1", got.Items[0].ProductName)
	assert.Equal(t, "100", got.TotalAmount.String())
}

func TestUpdateStatus_SoloVendedorInvolucrado(t *testing.T) {
	store, uc, _, _ := setup(t)
	out := place(t, uc, dto.OrderLineRequest{ProductID: "p1", Quantity: 1})
	audit := &recordingAudit{}
	us := orders.NewUpdateStatusUseCase(store.Orders(), store.Products(), audit, nil)

	_, err := us.Execute(ctx, "b1", out.ID, entity.OrderStatusShipped)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = us.Execute(ctx, "s2", out.ID, entity.OrderStatusShipped)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := us.Execute(ctx, "s1", out.ID, entity.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, got.Status)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, entity.OrderStatusPending, audit.entries[0].Details["from"])
	assert.Equal(t, entity.OrderStatusShipped, audit.entries[0].Details["to"])

	// cualquier estado puede volver a cualquier otro
	got, err = us.Execute(ctx, "s1", out.ID, entity.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	store, uc, _, _ := setup(t)
	out := place(t, uc, dto.OrderLineRequest{ProductID: "p1", Quantity: 1})
	us := orders.NewUpdateStatusUseCase(store.Orders(), store.Products(), nil, nil)

	_, err := us.Execute(ctx, "s1", out.ID, "Lost")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = us.Execute(ctx, "s1", "no-existe", entity.OrderStatusPaid)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestReceipt_EntregaOrdenYComprador(t *testing.T) {
	store, uc, _, _ := setup(t)
	out := place(t, uc, dto.OrderLineRequest{ProductID: "p1", Quantity: 1})
	gen := &stubReceipt{}
	rc := orders.NewReceiptUseCase(store.Orders(), store.Products(), store.Users(), gen)

	pdf, err := rc.Generate(ctx, "b1", out.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 stub", string(pdf))
	assert.Equal(t, out.ID, gen.order.ID)
	assert.Equal(t, "b1", gen.buyer.ID)

	_, err = rc.Generate(ctx, "s2", out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
