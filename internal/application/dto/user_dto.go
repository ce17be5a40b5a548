package dto

import "time"

// RegisterRequest entrada para registro.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=buyer seller"`
	Region   string `json:"region" validate:"omitempty,max=120"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse token JWT + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AddressRequest nueva dirección del usuario.
type AddressRequest struct {
	Street string `json:"street" validate:"required,max=200"`
	City   string `json:"city" validate:"required,max=100"`
	State  string `json:"state" validate:"omitempty,max=100"`
	Zip    string `json:"zip" validate:"omitempty,max=20"`
	Type   string `json:"type" validate:"omitempty,max=30"`
}

// AddressResponse dirección guardada.
type AddressResponse struct {
	ID     string `json:"id"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	Type   string `json:"type"`
}
