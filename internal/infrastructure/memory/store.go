// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa en tests y con STORAGE_DRIVER=memory para demos locales; no persiste entre reinicios.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/greenthread-api/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*entity.User
	emails    map[string]string // email -> user id
	addresses map[string][]entity.Address
	products  map[string]*entity.Product
	orders    map[string]*storedOrder
	seq       int64
}

type storedOrder struct {
	order entity.Order
	seq   int64 // desempate cuando dos órdenes tienen el mismo CreatedAt
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]*entity.User),
		emails:    make(map[string]string),
		addresses: make(map[string][]entity.Address),
		products:  make(map[string]*entity.Product),
		orders:    make(map[string]*storedOrder),
	}
}

// Ping siempre disponible.
func (s *Store) Ping(context.Context) error { return nil }

// Users repositorio de usuarios sobre este almacén.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Products repositorio de productos sobre este almacén.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Orders repositorio de órdenes sobre este almacén.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// TxRunner runner de transacciones sobre este almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// ── copias ────────────────────────────────────────────────────────────────────

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copyOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = make([]entity.OrderItem, len(o.Items))
	for i, it := range o.Items {
		if it.ProductID != nil {
			id := *it.ProductID
			it.ProductID = &id
		}
		c.Items[i] = it
	}
	return &c
}

func (s *Store) sortedOrders(match func(o *entity.Order) bool) []*entity.Order {
	list := make([]*storedOrder, 0)
	for _, so := range s.orders {
		if match(&so.order) {
			list = append(list, so)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.order.CreatedAt.Equal(b.order.CreatedAt) {
			return a.order.CreatedAt.After(b.order.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]*entity.Order, 0, len(list))
	for _, so := range list {
		out = append(out, copyOrder(&so.order))
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
