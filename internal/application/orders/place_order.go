package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
	"github.com/jhoicas/greenthread-api/pkg/logger"
)

// PlaceOrderUseCase crea una orden congelando el precio vigente de cada producto.
// El stock no se descuenta.
type PlaceOrderUseCase struct {
	tx    TxRunner
	users repository.UserRepository
	cache ports.InsightsCache
	audit ports.AuditLogger
	log   *logger.Logger
	now   func() time.Time
}

// NewPlaceOrderUseCase construye el caso de uso. cache, audit y log pueden ser nil.
func NewPlaceOrderUseCase(
	tx TxRunner,
	users repository.UserRepository,
	cache ports.InsightsCache,
	audit ports.AuditLogger,
	log *logger.Logger,
) *PlaceOrderUseCase {
	if cache == nil {
		cache = ports.NopInsightsCache{}
	}
	if audit == nil {
		audit = ports.NopAuditLogger{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PlaceOrderUseCase{
		tx:    tx,
		users: users,
		cache: cache,
		audit: audit,
		log:   log.Component("orders"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *PlaceOrderUseCase) WithClock(now func() time.Time) *PlaceOrderUseCase {
	uc.now = now
	return uc
}

// Execute valida la entrada, resuelve la dirección y persiste orden + líneas en una sola transacción.
// Si algún producto no existe, la orden completa se rechaza con ErrProductNotFound.
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, buyerID string, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if buyerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden no tiene productos", domain.ErrInvalidInput)
	}
	for i, line := range in.Items {
		if strings.TrimSpace(line.ProductID) == "" || line.Quantity < 1 {
			return nil, fmt.Errorf("%w: línea %d inválida", domain.ErrInvalidInput, i)
		}
	}
	status := in.Status
	if status == "" {
		status = entity.OrderStatusPending
	}
	if status != entity.OrderStatusPending && status != entity.OrderStatusPaid {
		return nil, domain.ErrInvalidStatus
	}
	payment := strings.TrimSpace(in.PaymentMethod)
	if payment == "" {
		payment = entity.DefaultPaymentMethod
	}
	shipping, err := uc.resolveShipping(ctx, buyerID, in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		BuyerID:         buyerID,
		Items:           make([]entity.OrderItem, 0, len(in.Items)),
		Status:          status,
		PaymentMethod:   payment,
		ShippingAddress: shipping,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	products := make(map[string]*entity.Product, len(in.Items))

	err = uc.tx.RunOrder(ctx, func(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) error {
		for _, line := range in.Items {
			p, ok := products[line.ProductID]
			if !ok {
				var err error
				p, err = productRepo.GetByID(ctx, line.ProductID)
				if err != nil {
					return err
				}
				if p == nil {
					return fmt.Errorf("%w: %s", domain.ErrProductNotFound, line.ProductID)
				}
				products[p.ID] = p
			}
			pid := p.ID
			order.Items = append(order.Items, entity.OrderItem{
				ID:          uuid.New().String(),
				ProductID:   &pid,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				Price:       p.Price,
			})
		}
		order.TotalAmount = order.ComputeTotal()
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(ctx, order, products)
	return ToOrderResponse(order, products), nil
}

func (uc *PlaceOrderUseCase) resolveShipping(ctx context.Context, buyerID string, in dto.PlaceOrderRequest) (string, error) {
	if id := strings.TrimSpace(in.AddressID); id != "" {
		list, err := uc.users.ListAddresses(ctx, buyerID)
		if err != nil {
			return "", err
		}
		for _, a := range list {
			if a.ID == id {
				return a.String(), nil
			}
		}
		return "", fmt.Errorf("%w: dirección %s", domain.ErrNotFound, id)
	}
	if s := strings.TrimSpace(in.ShippingAddress); s != "" {
		return s, nil
	}
	return "", fmt.Errorf("%w: dirección de envío requerida", domain.ErrInvalidInput)
}

// afterCommit invalida el reporte de cada vendedor involucrado y registra la auditoría.
// Los fallos se registran en el log; la orden ya quedó confirmada.
func (uc *PlaceOrderUseCase) afterCommit(ctx context.Context, order *entity.Order, products map[string]*entity.Product) {
	sellers := make([]string, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.SellerID]; ok {
			continue
		}
		seen[p.SellerID] = struct{}{}
		sellers = append(sellers, p.SellerID)
	}
	if err := uc.cache.Invalidate(ctx, sellers...); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("caché: no se pudo invalidar el reporte de los vendedores")
	}

	entry := ports.AuditEntry{
		Action:     ports.AuditOrderCreated,
		ActorID:    order.BuyerID,
		EntityType: "order",
		EntityID:   order.ID,
		Details: map[string]any{
			"total_amount": order.TotalAmount.String(),
			"items":        len(order.Items),
			"status":       order.Status,
			"sellers":      sellers,
		},
		CreatedAt: order.CreatedAt,
	}
	if err := uc.audit.Record(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("auditoría: no se pudo registrar")
	}
	uc.log.Info().
		Str("order_id", order.ID).
		Str("buyer_id", order.BuyerID).
		Str("total", order.TotalAmount.String()).
		Int("items", len(order.Items)).
		Msg("orden creada")
}
