package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. No hay grafo de transiciones: el vendedor puede pasar de cualquiera a cualquiera.
const (
	OrderStatusPending   = "Pending"
	OrderStatusPaid      = "Paid"
	OrderStatusPacked    = "Packed"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// DefaultPaymentMethod se usa cuando el comprador no indica medio de pago.
const DefaultPaymentMethod = "Credit Card"

var validOrderStatuses = map[string]struct{}{
	OrderStatusPending:   {},
	OrderStatusPaid:      {},
	OrderStatusPacked:    {},
	OrderStatusShipped:   {},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// IsValidOrderStatus indica si s pertenece al conjunto de estados.
func IsValidOrderStatus(s string) bool {
	_, ok := validOrderStatuses[s]
	return ok
}

// Order compra de un comprador. Inmutable salvo Status.
type Order struct {
	ID              string
	BuyerID         string
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	Status          string
	PaymentMethod   string
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem línea de la orden. Price queda congelado al crear la orden.
// ProductID es nil cuando el producto fue eliminado después.
type OrderItem struct {
	ID          string
	ProductID   *string
	ProductName string // copia del nombre al momento de la compra
	Quantity    int
	Price       decimal.Decimal
}

// Subtotal price*quantity de la línea.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotal suma los subtotales de las líneas.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// ProductIDs ids de producto todavía referenciados, sin repetir y en orden de aparición.
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	out := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if it.ProductID == nil {
			continue
		}
		if _, ok := seen[*it.ProductID]; ok {
			continue
		}
		seen[*it.ProductID] = struct{}{}
		out = append(out, *it.ProductID)
	}
	return out
}
