package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `o.id, o.buyer_id, o.total_amount, o.status, o.payment_method, o.shipping_address, o.created_at, o.updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera y sus líneas en una sola transacción (savepoint si q ya es una tx).
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, buyer_id, total_amount, status, payment_method, shipping_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID, order.BuyerID, order.TotalAmount, order.Status, order.PaymentMethod,
		order.ShippingAddress, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, it := range order.Items {
		batch.Queue(`
			INSERT INTO order_items (id, order_id, position, product_id, product_name, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, order.ID, i, it.ProductID, it.ProductName, it.Quantity, it.Price,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("insert order items: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	list, err := r.listWhere(ctx, `o.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListByBuyer órdenes del comprador.
func (r *OrderRepo) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return r.listWhere(ctx, `o.buyer_id = $1`, buyerID)
}

// ListBySeller órdenes con al menos una línea de un producto del vendedor.
func (r *OrderRepo) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	return r.listWhere(ctx, `EXISTS (
		SELECT 1 FROM order_items i JOIN products p ON p.id = i.product_id
		WHERE i.order_id = o.id AND p.seller_id = $1)`, sellerID)
}

// ListContainingProducts órdenes con al menos una línea que referencia alguno de los ids.
func (r *OrderRepo) ListContainingProducts(ctx context.Context, productIDs []string) ([]*entity.Order, error) {
	if len(productIDs) == 0 {
		return []*entity.Order{}, nil
	}
	return r.listWhere(ctx, `EXISTS (
		SELECT 1 FROM order_items i WHERE i.order_id = o.id AND i.product_id = ANY($1))`, productIDs)
}

// UpdateStatus único cambio permitido sobre una orden existente.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// listWhere carga las cabeceras que cumplen cond (más recientes primero) y luego todas sus líneas en una consulta.
func (r *OrderRepo) listWhere(ctx context.Context, cond string, arg any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders o WHERE `+cond+` ORDER BY o.created_at DESC, o.id DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list := make([]*entity.Order, 0)
	byID := make(map[string]*entity.Order)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.TotalAmount, &o.Status, &o.PaymentMethod,
			&o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Items = make([]entity.OrderItem, 0)
		list = append(list, &o)
		byID[o.ID] = &o
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}
	itemRows, err := r.q.Query(ctx, `
		SELECT order_id, id, product_id, product_name, quantity, price
		FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var orderID string
		var it entity.OrderItem
		if err := itemRows.Scan(&orderID, &it.ID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return list, nil
}
