package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/costeo-fifo/internal/domain/entity"
	"github.com/jhoicas/costeo-fifo/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const variantColumns = `id, product_id, company_id, sku, name, base_price, tax_rate, reorder_point, created_at, updated_at`

// ProductRepo catálogo sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create SKU repetido en la empresa devuelve domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO products (id, company_id, sku, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.CompanyID, p.SKU, p.Name, p.CreatedAt, p.UpdatedAt,
	)
	return wrapInsert("product", err)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, sku, name, created_at, updated_at FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByCompany lista productos por empresa con paginación, ordenados por SKU.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, sku, name, created_at, updated_at
		FROM products WHERE company_id = $1
		ORDER BY sku LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Product, error) {
		var p entity.Product
		err := row.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.CreatedAt, &p.UpdatedAt)
		return &p, err
	})
}

func (r *ProductRepo) CreateVariant(ctx context.Context, v *entity.Variant) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_variants (`+variantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, v.ProductID, v.CompanyID, v.SKU, v.Name, v.BasePrice, v.TaxRate, v.ReorderPoint, v.CreatedAt, v.UpdatedAt,
	)
	return wrapInsert("product variant", err)
}

func (r *ProductRepo) GetVariant(ctx context.Context, id string) (*entity.Variant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product variant: %w", err)
	}
	return v, nil
}

func (r *ProductRepo) ListVariants(ctx context.Context, productID string) ([]*entity.Variant, error) {
	rows, err := r.q.Query(ctx, `SELECT `+variantColumns+` FROM product_variants WHERE product_id = $1 ORDER BY sku`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product variants: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Variant, error) {
		return scanVariant(row)
	})
}

func (r *ProductRepo) UpsertVariantPrice(ctx context.Context, p *entity.VariantPrice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO variant_prices (variant_id, channel, price, min_order_qty)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (variant_id, channel)
		DO UPDATE SET price = EXCLUDED.price, min_order_qty = EXCLUDED.min_order_qty`,
		p.VariantID, p.Channel, p.Price, p.MinOrderQty,
	)
	if err != nil {
		return fmt.Errorf("upsert variant price: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetVariantPrice(ctx context.Context, variantID string, channel entity.Channel) (*entity.VariantPrice, error) {
	var p entity.VariantPrice
	err := r.q.QueryRow(ctx,
		`SELECT variant_id, channel, price, min_order_qty FROM variant_prices WHERE variant_id = $1 AND channel = $2`,
		variantID, channel,
	).Scan(&p.VariantID, &p.Channel, &p.Price, &p.MinOrderQty)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant price: %w", err)
	}
	return &p, nil
}

func scanVariant(row pgx.Row) (*entity.Variant, error) {
	var v entity.Variant
	err := row.Scan(&v.ID, &v.ProductID, &v.CompanyID, &v.SKU, &v.Name, &v.BasePrice, &v.TaxRate,
		&v.ReorderPoint, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
