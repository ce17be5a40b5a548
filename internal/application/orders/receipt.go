package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
)

// ReceiptUseCase comprobante PDF de la orden para el comprador o un vendedor involucrado.
type ReceiptUseCase struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, products: products, users: users, generator: generator}
}

// Generate devuelve los bytes del PDF. Usa los precios congelados de la orden.
func (uc *ReceiptUseCase) Generate(ctx context.Context, callerID, orderID string) ([]byte, error) {
	order, _, err := loadOrderForParticipant(ctx, uc.orders, uc.products, callerID, orderID)
	if err != nil {
		return nil, err
	}
	buyer, err := uc.users.GetByID(ctx, order.BuyerID)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, domain.ErrUserNotFound
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, order, buyer)
	if err != nil {
		return nil, fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, nil
}
