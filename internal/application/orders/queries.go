package orders

import (
	"context"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
)

// QueryUseCase consultas de órdenes del comprador y del vendedor.
type QueryUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(orders repository.OrderRepository, products repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{orders: orders, products: products}
}

// GetOrder devuelve la orden si el llamante es el comprador o vende alguno de sus productos.
func (uc *QueryUseCase) GetOrder(ctx context.Context, callerID, orderID string) (*dto.OrderResponse, error) {
	order, products, err := loadOrderForParticipant(ctx, uc.orders, uc.products, callerID, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order, products), nil
}

// ListBuyerOrders órdenes del comprador, de la más reciente a la más antigua.
func (uc *QueryUseCase) ListBuyerOrders(ctx context.Context, callerID, buyerID string) ([]dto.OrderResponse, error) {
	if callerID != buyerID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, list)
}

// ListSellerOrders órdenes con al menos un producto del vendedor.
func (uc *QueryUseCase) ListSellerOrders(ctx context.Context, callerID, sellerID string) ([]dto.OrderResponse, error) {
	if callerID != sellerID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.orders.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(ctx, list)
}

func (uc *QueryUseCase) toResponses(ctx context.Context, list []*entity.Order) ([]dto.OrderResponse, error) {
	var ids []string
	seen := make(map[string]struct{})
	for _, o := range list {
		for _, id := range o.ProductIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	products, err := uc.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderResponse(o, products))
	}
	return out, nil
}

// loadOrderForParticipant carga la orden y sus productos vigentes y valida que el llamante participe.
func loadOrderForParticipant(
	ctx context.Context,
	orders repository.OrderRepository,
	productRepo repository.ProductRepository,
	callerID, orderID string,
) (*entity.Order, map[string]*entity.Product, error) {
	order, err := orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrOrderNotFound
	}
	products, err := productRepo.GetByIDs(ctx, order.ProductIDs())
	if err != nil {
		return nil, nil, err
	}
	if order.BuyerID != callerID && !sellsAny(products, callerID) {
		return nil, nil, domain.ErrForbidden
	}
	return order, products, nil
}

func sellsAny(products map[string]*entity.Product, sellerID string) bool {
	for _, p := range products {
		if p.SellerID == sellerID {
			return true
		}
	}
	return false
}

// ToOrderResponse convierte la orden; products aporta el resumen vigente de cada línea (puede faltar).
func ToOrderResponse(o *entity.Order, products map[string]*entity.Product) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:              o.ID,
		BuyerID:         o.BuyerID,
		Items:           make([]dto.OrderItemResponse, 0, len(o.Items)),
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, it := range o.Items {
		item := dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal(),
		}
		if it.ProductID != nil {
			if p, ok := products[*it.ProductID]; ok {
				item.Product = &dto.OrderProductSummary{
					ID:       p.ID,
					SellerID: p.SellerID,
					Name:     p.Name,
					Category: p.Category,
					ImageURL: p.ImageURL,
					Price:    p.Price,
				}
			}
		}
		out.Items = append(out.Items, item)
	}
	return out
}
