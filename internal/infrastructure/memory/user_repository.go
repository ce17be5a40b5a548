package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo UserRepository en memoria.
type UserRepo struct {
	s *Store
}

// Create inserta el usuario. El email es único sin distinguir mayúsculas.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := r.s.emails[key]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[user.ID] = copyUser(user)
	r.s.emails[key] = user.ID
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.emails[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return copyUser(r.s.users[id]), nil
}

// ListAddresses direcciones en orden de inserción.
func (r *UserRepo) ListAddresses(_ context.Context, userID string) ([]entity.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if _, ok := r.s.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	src := r.s.addresses[userID]
	out := make([]entity.Address, len(src))
	copy(out, src)
	return out, nil
}

func (r *UserRepo) AddAddress(_ context.Context, addr *entity.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[addr.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.addresses[addr.UserID] = append(r.s.addresses[addr.UserID], *addr)
	return nil
}
