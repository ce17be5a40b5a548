package orders

import (
	"context"
	"time"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
	"github.com/jhoicas/greenthread-api/pkg/logger"
)

// UpdateStatusUseCase cambio de estado por parte de un vendedor de la orden.
// Cualquier estado puede pasar a cualquier otro.
type UpdateStatusUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	audit    ports.AuditLogger
	log      *logger.Logger
}

// NewUpdateStatusUseCase construye el caso de uso. audit y log pueden ser nil.
func NewUpdateStatusUseCase(orders repository.OrderRepository, products repository.ProductRepository, audit ports.AuditLogger, log *logger.Logger) *UpdateStatusUseCase {
	if audit == nil {
		audit = ports.NopAuditLogger{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UpdateStatusUseCase{orders: orders, products: products, audit: audit, log: log.Component("orders")}
}

// Execute valida el estado, verifica que el llamante venda algún producto de la orden y lo persiste.
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, callerID, orderID, status string) (*dto.OrderResponse, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	products, err := uc.products.GetByIDs(ctx, order.ProductIDs())
	if err != nil {
		return nil, err
	}
	if !sellsAny(products, callerID) {
		return nil, domain.ErrForbidden
	}

	previous := order.Status
	if err := uc.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()

	entry := ports.AuditEntry{
		Action:     ports.AuditOrderStatusChanged,
		ActorID:    callerID,
		EntityType: "order",
		EntityID:   orderID,
		Details:    map[string]any{"from": previous, "to": status},
		CreatedAt:  order.UpdatedAt,
	}
	if err := uc.audit.Record(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("auditoría: no se pudo registrar")
	}
	return ToOrderResponse(order, products), nil
}
