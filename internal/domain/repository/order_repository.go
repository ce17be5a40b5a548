package repository

import (
	"context"

	"github.com/jhoicas/greenthread-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order con sus líneas (DIP).
// Los listados van de la más reciente a la más antigua.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error)
	// ListBySeller órdenes con al menos una línea de un producto del vendedor.
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error)
	// ListContainingProducts órdenes con al menos una línea que referencia alguno de los ids.
	ListContainingProducts(ctx context.Context, productIDs []string) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
