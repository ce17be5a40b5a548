package memory

import (
	"context"

	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
)

// TxRunner emula una transacción: las órdenes creadas dentro de fn se aplican solo si fn no falla.
type TxRunner struct {
	s *Store
}

// RunOrder ejecuta fn con repos cuyo Create de órdenes queda en buffer hasta el commit.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx := &txOrderRepo{OrderRepo: r.s.Orders()}
	if err := fn(r.s.Products(), tx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range tx.pending {
		// fn leyó productos sin el lock; un producto borrado entre tanto queda como línea sin producto.
		for i := range o.Items {
			if id := o.Items[i].ProductID; id != nil {
				if _, ok := r.s.products[*id]; !ok {
					o.Items[i].ProductID = nil
				}
			}
		}
		if err := r.s.insertOrderLocked(o); err != nil {
			return err
		}
	}
	return nil
}

type txOrderRepo struct {
	*OrderRepo
	pending []*entity.Order
}

func (t *txOrderRepo) Create(_ context.Context, order *entity.Order) error {
	t.pending = append(t.pending, copyOrder(order))
	return nil
}
