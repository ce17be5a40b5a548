package orders

import (
	"context"

	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
)

// TxRunner ejecuta la creación de la orden dentro de una transacción con repos atados a ella.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de una orden.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, buyer *entity.User) ([]byte, error)
}
