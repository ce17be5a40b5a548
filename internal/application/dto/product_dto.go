package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para publicar un producto. El vendedor es el usuario autenticado.
type CreateProductRequest struct {
	Name            string           `json:"name" validate:"required,min=1,max=200"`
	Description     string           `json:"description" validate:"max=4000"`
	Material        string           `json:"material" validate:"max=120"`
	Region          string           `json:"region" validate:"max=120"`
	Category        string           `json:"category" validate:"max=120"`
	Price           decimal.Decimal  `json:"price"`
	Stock           int              `json:"stock" validate:"gte=0,lte=2147483647"`
	CarbonFootprint *decimal.Decimal `json:"carbonFootprint"`
	ImageURL        string           `json:"imageUrl"`
}

// UpdateProductRequest cambios parciales; los campos nil no se tocan.
type UpdateProductRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string          `json:"description" validate:"omitempty,max=4000"`
	Material        *string          `json:"material" validate:"omitempty,max=120"`
	Region          *string          `json:"region" validate:"omitempty,max=120"`
	Category        *string          `json:"category" validate:"omitempty,max=120"`
	Price           *decimal.Decimal `json:"price"`
	Stock           *int             `json:"stock" validate:"omitempty,gte=0,lte=2147483647"`
	CarbonFootprint *decimal.Decimal `json:"carbonFootprint"`
	ImageURL        *string          `json:"imageUrl"`
}

// SellerResponse vendedor visible en el catálogo.
type SellerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Region string `json:"region"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string           `json:"id"`
	SellerID        string           `json:"sellerId"`
	Seller          *SellerResponse  `json:"seller,omitempty"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Material        string           `json:"material"`
	Region          string           `json:"region"`
	Category        string           `json:"category"`
	Price           decimal.Decimal  `json:"price"`
	Stock           int              `json:"stock"`
	CarbonFootprint *decimal.Decimal `json:"carbonFootprint"`
	ImageURL        string           `json:"imageUrl"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
