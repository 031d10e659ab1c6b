package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.BundleRepository  = (*BundleRepo)(nil)
)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, price, product_type, active, created_at, updated_at`

// Create persiste un nuevo producto. SKU repetido -> domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (sku, name, price, product_type, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		p.SKU, p.Name, p.Price, p.ProductType, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return translate(err, "insert product")
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Price, &p.ProductType, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos mutables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		UPDATE products SET name = $2, price = $3, product_type = $4, active = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Name, p.Price, p.ProductType, p.Active,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return translate(err, "update product")
	}
	return nil
}

// Delete borra el producto y todo lo que cuelga de él. Llamar dentro de TxRunner.Run.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	var referenced bool
	if err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sales_order_items WHERE product_id = $1)`, id,
	).Scan(&referenced); err != nil {
		return fmt.Errorf("check product sales: %w", err)
	}
	if referenced {
		return domain.ErrRestricted
	}

	for _, s := range []struct{ op, sql string }{
		{"delete product changes", `DELETE FROM inventory_changes WHERE product_id = $1`},
		{"delete product inventory", `DELETE FROM inventories WHERE product_id = $1`},
		{"delete product threshold", `DELETE FROM product_thresholds WHERE product_id = $1`},
		{"delete product overrides", `DELETE FROM product_threshold_overrides WHERE product_id = $1`},
		{"delete product suppliers", `DELETE FROM supplier_products WHERE product_id = $1`},
		{"delete product bundles", `DELETE FROM product_bundles WHERE bundle_id = $1 OR component_product_id = $1`},
	} {
		if _, err := r.q.Exec(ctx, s.sql, id); err != nil {
			return translateDelete(err, s.op)
		}
	}

	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err, "delete product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BundleRepo componentes de kits.
type BundleRepo struct {
	q Querier
}

// NewBundleRepository construye el adaptador de bundles.
func NewBundleRepository(q Querier) *BundleRepo {
	return &BundleRepo{q: q}
}

// Upsert inserta o actualiza la cantidad del componente en el kit.
func (r *BundleRepo) Upsert(ctx context.Context, b *entity.ProductBundle) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_bundles (bundle_id, component_product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (bundle_id, component_product_id) DO UPDATE SET quantity = EXCLUDED.quantity`,
		b.BundleID, b.ComponentProductID, b.Quantity,
	)
	if err != nil {
		return translate(err, "upsert bundle")
	}
	return nil
}

// ListComponents lista los componentes de un kit.
func (r *BundleRepo) ListComponents(ctx context.Context, bundleID int64) ([]*entity.ProductBundle, error) {
	rows, err := r.q.Query(ctx, `
		SELECT bundle_id, component_product_id, quantity
		FROM product_bundles WHERE bundle_id = $1 ORDER BY component_product_id`, bundleID)
	if err != nil {
		return nil, fmt.Errorf("list bundle components: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.ProductBundle, error) {
		var b entity.ProductBundle
		err := row.Scan(&b.BundleID, &b.ComponentProductID, &b.Quantity)
		return &b, err
	})
}
