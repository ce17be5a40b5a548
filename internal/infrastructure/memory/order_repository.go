package memory

import (
	"context"
	"time"

	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo OrderRepository en memoria.
type OrderRepo struct {
	s *Store
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertOrderLocked(order)
}

func (s *Store) insertOrderLocked(order *entity.Order) error {
	if _, ok := s.users[order.BuyerID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := s.orders[order.ID]; ok {
		return domain.ErrConflict
	}
	s.seq++
	s.orders[order.ID] = &storedOrder{order: *copyOrder(order), seq: s.seq}
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	so, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(&so.order), nil
}

func (r *OrderRepo) ListByBuyer(_ context.Context, buyerID string) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedOrders(func(o *entity.Order) bool { return o.BuyerID == buyerID }), nil
}

func (r *OrderRepo) ListBySeller(_ context.Context, sellerID string) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	owned := make(map[string]struct{})
	for id, p := range r.s.products {
		if p.SellerID == sellerID {
			owned[id] = struct{}{}
		}
	}
	return r.s.sortedOrders(func(o *entity.Order) bool { return referencesAny(o, owned) }), nil
}

func (r *OrderRepo) ListContainingProducts(_ context.Context, productIDs []string) ([]*entity.Order, error) {
	if len(productIDs) == 0 {
		return []*entity.Order{}, nil
	}
	set := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		set[id] = struct{}{}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedOrders(func(o *entity.Order) bool { return referencesAny(o, set) }), nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	so, ok := r.s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	so.order.Status = status
	so.order.UpdatedAt = time.Now().UTC()
	return nil
}

func referencesAny(o *entity.Order, ids map[string]struct{}) bool {
	for _, it := range o.Items {
		if it.ProductID == nil {
			continue
		}
		if _, ok := ids[*it.ProductID]; ok {
			return true
		}
	}
	return false
}
