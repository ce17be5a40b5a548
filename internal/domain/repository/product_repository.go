package repository

import (
	"context"

	"github.com/jhoicas/greenthread-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDs devuelve los productos existentes indexados por id; los ausentes se omiten.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.ProductWithSeller, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error)
	// Update no modifica SellerID.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
