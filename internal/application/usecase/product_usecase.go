package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/greenthread-api/internal/application/dto"
	"github.com/jhoicas/greenthread-api/internal/application/ports"
	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
	"github.com/jhoicas/greenthread-api/pkg/logger"
)

// ProductUseCase catálogo y CRUD de productos del vendedor.
// Toda mutación invalida el reporte de ventas cacheado del vendedor.
type ProductUseCase struct {
	repo  repository.ProductRepository
	cache ports.InsightsCache
	audit ports.AuditLogger
	log   *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache y audit pueden ser nil.
func NewProductUseCase(repo repository.ProductRepository, cache ports.InsightsCache, audit ports.AuditLogger, log *logger.Logger) *ProductUseCase {
	if cache == nil {
		cache = ports.NopInsightsCache{}
	}
	if audit == nil {
		audit = ports.NopAuditLogger{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, cache: cache, audit: audit, log: log.Component("products")}
}

// Create publica un producto del vendedor sellerID.
func (uc *ProductUseCase) Create(ctx context.Context, sellerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	price, err := normalizePrice(in.Price)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SellerID:    sellerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Material:    in.Material,
		Region:      in.Region,
		Category:    in.Category,
		Price:       price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.CarbonFootprint != nil {
		cf, err := normalizeFootprint(*in.CarbonFootprint)
		if err != nil {
			return nil, err
		}
		product.CarbonFootprint = decimal.NewNullDecimal(cf)
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, sellerID)
	return ToProductResponse(product, nil), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return ToProductResponse(product, nil), nil
}

// List catálogo público con datos del vendedor.
func (uc *ProductUseCase) List(ctx context.Context, category, query string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, entity.ProductFilter{
		Category: strings.TrimSpace(category),
		Query:    strings.TrimSpace(query),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		seller := p.Seller
		items = append(items, *ToProductResponse(&p.Product, &seller))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListBySeller productos publicados por el vendedor.
func (uc *ProductUseCase) ListBySeller(ctx context.Context, sellerID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToProductResponse(p, nil))
	}
	return out, nil
}

// Update aplica cambios parciales. Solo el dueño puede editar; el vendedor no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, callerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Material != nil {
		product.Material = *in.Material
	}
	if in.Region != nil {
		product.Region = *in.Region
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		price, err := normalizePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	if in.CarbonFootprint != nil {
		cf, err := normalizeFootprint(*in.CarbonFootprint)
		if err != nil {
			return nil, err
		}
		product.CarbonFootprint = decimal.NewNullDecimal(cf)
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, product.SellerID)
	return ToProductResponse(product, nil), nil
}

// Delete elimina el producto. Las líneas de órdenes que lo referencian se conservan sin producto.
func (uc *ProductUseCase) Delete(ctx context.Context, callerID, id string) error {
	product, err := uc.owned(ctx, callerID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, product.SellerID)
	entry := ports.AuditEntry{
		Action:     ports.AuditProductDeleted,
		ActorID:    callerID,
		EntityType: "product",
		EntityID:   id,
		Details:    map[string]any{"name": product.Name, "price": product.Price.String()},
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.audit.Record(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("product_id", id).Msg("auditoría: no se pudo registrar")
	}
	return nil
}

func (uc *ProductUseCase) owned(ctx context.Context, callerID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.SellerID != callerID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context, sellerID string) {
	if err := uc.cache.Invalidate(ctx, sellerID); err != nil {
		uc.log.Warn().Err(err).Str("seller_id", sellerID).Msg("caché: no se pudo invalidar el reporte")
	}
}

// ToProductResponse convierte la entidad; seller es opcional.
func ToProductResponse(p *entity.Product, seller *entity.SellerSummary) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		Material:    p.Material,
		Region:      p.Region,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CarbonFootprint.Valid {
		cf := p.CarbonFootprint.Decimal
		out.CarbonFootprint = &cf
	}
	if seller != nil && seller.ID != "" {
		out.Seller = &dto.SellerResponse{ID: seller.ID, Name: seller.Name, Email: seller.Email, Region: seller.Region}
	}
	return out
}

// ── Escala de columnas ───────────────────────────────────────────────────────

// Mismas escalas que NUMERIC(12,2) y NUMERIC(12,3) en products.
const (
	priceScale     = 2
	footprintScale = 3
)

var (
	maxPrice     = decimal.New(1, 12-priceScale)
	maxFootprint = decimal.New(1, 12-footprintScale)
)

func normalizePrice(p decimal.Decimal) (decimal.Decimal, error) {
	return normalizeScale(p, priceScale, maxPrice)
}

func normalizeFootprint(cf decimal.Decimal) (decimal.Decimal, error) {
	return normalizeScale(cf, footprintScale, maxFootprint)
}

func normalizeScale(v decimal.Decimal, scale int32, limit decimal.Decimal) (decimal.Decimal, error) {
	v = v.Round(scale)
	if v.IsNegative() || v.GreaterThanOrEqual(limit) {
		return decimal.Decimal{}, fmt.Errorf("%w: valor fuera de rango", domain.ErrInvalidInput)
	}
	return v, nil
}
