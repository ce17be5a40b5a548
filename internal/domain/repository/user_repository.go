package repository

import (
	"context"

	"github.com/jhoicas/greenthread-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User y sus direcciones (DIP).
// GetByID y GetByEmail devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListAddresses(ctx context.Context, userID string) ([]entity.Address, error)
	AddAddress(ctx context.Context, addr *entity.Address) error
}
