package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest producto y cantidad pedidos.
type OrderLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=2147483647"`
}

// PlaceOrderRequest entrada para crear una orden. El comprador es el usuario autenticado.
// Se indica AddressID (dirección guardada) o ShippingAddress (texto libre).
type PlaceOrderRequest struct {
	Items           []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	AddressID       string             `json:"addressId" validate:"required_without=ShippingAddress"`
	ShippingAddress string             `json:"shippingAddress" validate:"required_without=AddressID,max=500"`
	PaymentMethod   string             `json:"paymentMethod" validate:"omitempty,max=60"`
	Status          string             `json:"status" validate:"omitempty,oneof=Pending Paid"`
}

// UpdateOrderStatusRequest único cambio permitido sobre una orden.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Paid Packed Shipped Delivered Cancelled"`
}

// OrderProductSummary producto vigente de la línea; nil si fue eliminado.
type OrderProductSummary struct {
	ID       string          `json:"id"`
	SellerID string          `json:"sellerId"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	ImageURL string          `json:"imageUrl"`
	Price    decimal.Decimal `json:"price"` // precio actual, no el de la orden
}

// OrderItemResponse línea de la orden con su precio congelado.
type OrderItemResponse struct {
	ID          string               `json:"id"`
	ProductID   *string              `json:"productId"`
	ProductName string               `json:"productName"`
	Product     *OrderProductSummary `json:"product"`
	Quantity    int                  `json:"quantity"`
	Price       decimal.Decimal      `json:"price"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID              string              `json:"id"`
	BuyerID         string              `json:"buyerId"`
	Items           []OrderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	Status          string              `json:"status"`
	PaymentMethod   string              `json:"paymentMethod"`
	ShippingAddress string              `json:"shippingAddress"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}
