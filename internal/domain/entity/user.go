package entity

import "time"

// Roles válidos para User.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// User comprador o vendedor (artesano) del marketplace.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt; nunca viaja en respuestas
	Role         string // buyer, seller
	Region       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSeller indica si el usuario puede publicar productos.
func (u *User) IsSeller() bool {
	return u != nil && u.Role == RoleSeller
}
