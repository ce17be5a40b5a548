package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/greenthread-api/internal/domain"
	"github.com/jhoicas/greenthread-api/internal/domain/entity"
	"github.com/jhoicas/greenthread-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.seller_id, p.name, p.description, p.material, p.region, p.category,
	p.price, p.stock, p.carbon_footprint, p.image_url, p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row, extra ...any) (*entity.Product, error) {
	var p entity.Product
	dest := []any{
		&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Material, &p.Region, &p.Category,
		&p.Price, &p.Stock, &p.CarbonFootprint, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. ErrUserNotFound si el vendedor no existe.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, seller_id, name, description, material, region, category,
			price, stock, carbon_footprint, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SellerID, product.Name, product.Description, product.Material, product.Region,
		product.Category, product.Price, product.Stock, product.CarbonFootprint, product.ImageURL,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDs productos existentes indexados por id.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// List catálogo con el vendedor de cada producto, del más reciente al más antiguo.
func (r *ProductRepo) List(ctx context.Context, f entity.ProductFilter) ([]*entity.ProductWithSeller, error) {
	var limit any // NULL = sin límite
	if f.Limit > 0 {
		limit = f.Limit
	}
	query := `
		SELECT ` + productColumns + `, u.id, u.name, u.email, u.region
		FROM products p JOIN users u ON u.id = p.seller_id
		WHERE ($1::text = '' OR lower(p.category) = lower($1::text))
		  AND ($2::text = '' OR p.name ILIKE $2 OR p.material ILIKE $2 OR p.region ILIKE $2 OR p.description ILIKE $2)
		ORDER BY p.created_at DESC, p.id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.Category, likePattern(f.Query), limit, max(f.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ProductWithSeller, 0)
	for rows.Next() {
		var s entity.SellerSummary
		p, err := scanProduct(rows, &s.ID, &s.Name, &s.Email, &s.Region)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &entity.ProductWithSeller{Product: *p, Seller: s})
	}
	return list, rows.Err()
}

// ListBySeller productos del vendedor, del más reciente al más antiguo.
func (r *ProductRepo) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products p
		WHERE p.seller_id = $1 ORDER BY p.created_at DESC, p.id`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables. seller_id y created_at no se tocan.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, material = $4, region = $5, category = $6,
			price = $7, stock = $8, carbon_footprint = $9, image_url = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Material, product.Region, product.Category,
		product.Price, product.Stock, product.CarbonFootprint, product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete elimina el producto; order_items.product_id queda en NULL (ON DELETE SET NULL).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// likePattern "%q%" con los comodines de q escapados; vacío si no hay búsqueda.
func likePattern(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return ""
	}
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return "%" + q + "%"
}
