package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo publicado por un vendedor. SellerID no cambia después de creado.
type Product struct {
	ID              string
	SellerID        string
	Name            string
	Description     string
	Material        string
	Region          string
	Category        string
	Price           decimal.Decimal // precio unitario vigente
	Stock           int
	CarbonFootprint decimal.NullDecimal // kg CO2e por unidad, opcional
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SellerSummary datos públicos del vendedor que acompañan al catálogo.
type SellerSummary struct {
	ID     string
	Name   string
	Email  string
	Region string
}

// ProductWithSeller producto del catálogo con su vendedor.
type ProductWithSeller struct {
	Product
	Seller SellerSummary
}

// ProductFilter filtros opcionales del catálogo.
type ProductFilter struct {
	Category string
	Query    string // búsqueda por nombre, material o región
	Limit    int
	Offset   int
}
