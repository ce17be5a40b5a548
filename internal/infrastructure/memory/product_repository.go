package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo ProductRepository en memoria.
type ProductRepo struct {
	s *Store
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[product.SellerID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrConflict
	}
	r.s.products[product.ID] = copyProduct(product)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *ProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out[id] = copyProduct(p)
		}
	}
	return out, nil
}

// List catálogo filtrado, del más reciente al más antiguo.
func (r *ProductRepo) List(_ context.Context, f entity.ProductFilter) ([]*entity.ProductWithSeller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(f.Query))
	matches := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if q != "" && !containsFold(p.Name, q) && !containsFold(p.Material, q) &&
			!containsFold(p.Region, q) && !containsFold(p.Description, q) {
			continue
		}
		matches = append(matches, p)
	}
	sortProducts(matches)

	if f.Offset > 0 {
		if f.Offset >= len(matches) {
			matches = nil
		} else {
			matches = matches[f.Offset:]
		}
	}
	if f.Limit > 0 && len(matches) > f.Limit {
		matches = matches[:f.Limit]
	}

	out := make([]*entity.ProductWithSeller, 0, len(matches))
	for _, p := range matches {
		item := &entity.ProductWithSeller{Product: *copyProduct(p)}
		if u, ok := r.s.users[p.SellerID]; ok {
			item.Seller = entity.SellerSummary{ID: u.ID, Name: u.Name, Email: u.Email, Region: u.Region}
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ProductRepo) ListBySeller(_ context.Context, sellerID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matches []*entity.Product
	for _, p := range r.s.products {
		if p.SellerID == sellerID {
			matches = append(matches, p)
		}
	}
	sortProducts(matches)
	out := make([]*entity.Product, 0, len(matches))
	for _, p := range matches {
		out = append(out, copyProduct(p))
	}
	return out, nil
}

// Update reemplaza los campos editables; SellerID y CreatedAt se conservan.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	next := copyProduct(product)
	next.SellerID = cur.SellerID
	next.CreatedAt = cur.CreatedAt
	r.s.products[product.ID] = next
	return nil
}

// Delete elimina el producto y deja en nil las referencias de las líneas de órdenes.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	for _, so := range r.s.orders {
		for i := range so.order.Items {
			if pid := so.order.Items[i].ProductID; pid != nil && *pid == id {
				so.order.Items[i].ProductID = nil
			}
		}
	}
	return nil
}

func sortProducts(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
