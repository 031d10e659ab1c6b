package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockflow-api/internal/domain/alert"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.AlertSourceRepository = (*AlertSourceRepo)(nil)

// AlertSourceRepo lee los insumos del motor de alertas de una empresa en una sola foto consistente.
type AlertSourceRepo struct {
	pool *pgxpool.Pool
}

// NewAlertSourceRepository construye el lector de insumos de alertas.
func NewAlertSourceRepository(pool *pgxpool.Pool) *AlertSourceRepo {
	return &AlertSourceRepo{pool: pool}
}

// productos con inventario en alguna bodega de la empresa ($1)
const scopedProducts = `
	SELECT DISTINCT i.product_id
	FROM inventories i
	JOIN warehouses w ON w.id = i.warehouse_id
	WHERE w.company_id = $1`

// LoadSnapshot lee bodegas, stock, ventas de la ventana, umbrales y proveedores en una tx REPEATABLE READ.
func (r *AlertSourceRepo) LoadSnapshot(ctx context.Context, companyID int64, window alert.Window) (*alert.Snapshot, error) {
	snap := &alert.Snapshot{
		CompanyID: companyID,
		Products:  make(map[int64]alert.ProductInfo),
		Defaults:  make(map[int64]int64),
		Overrides: make(map[alert.Key]int64),
	}

	err := readOnly(ctx, r.pool, func(q Querier) error {
		var err error

		snap.Warehouses, err = collect(ctx, q, "load warehouses", `
			SELECT id, name FROM warehouses WHERE company_id = $1 ORDER BY id`,
			func(row pgx.CollectableRow) (alert.WarehouseInfo, error) {
				var w alert.WarehouseInfo
				err := row.Scan(&w.ID, &w.Name)
				return w, err
			}, companyID)
		if err != nil {
			return err
		}

		snap.Stock, err = collect(ctx, q, "load stock", `
			SELECT i.product_id, i.warehouse_id, i.quantity
			FROM inventories i
			JOIN warehouses w ON w.id = i.warehouse_id
			WHERE w.company_id = $1`,
			func(row pgx.CollectableRow) (alert.StockRow, error) {
				var s alert.StockRow
				err := row.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity)
				return s, err
			}, companyID)
		if err != nil {
			return err
		}

		snap.Sales, err = collect(ctx, q, "load sales", `
			SELECT soi.product_id, soi.warehouse_id, soi.quantity, so.ordered_at
			FROM sales_order_items soi
			JOIN sales_orders so ON so.id = soi.order_id
			WHERE so.company_id = $1 AND so.ordered_at BETWEEN $2 AND $3`,
			func(row pgx.CollectableRow) (alert.SaleLine, error) {
				var s alert.SaleLine
				err := row.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.OrderedAt)
				s.OrderedAt = s.OrderedAt.UTC()
				return s, err
			}, companyID, window.Since, window.Until)
		if err != nil {
			return err
		}

		type productRow struct {
			info      alert.ProductInfo
			threshold *int64
		}
		products, err := collect(ctx, q, "load products", `
			SELECT p.id, p.name, p.sku, t.threshold
			FROM products p
			LEFT JOIN product_thresholds t ON t.product_id = p.id
			WHERE p.id IN (`+scopedProducts+`)`,
			func(row pgx.CollectableRow) (productRow, error) {
				var p productRow
				err := row.Scan(&p.info.ID, &p.info.Name, &p.info.SKU, &p.threshold)
				return p, err
			}, companyID)
		if err != nil {
			return err
		}
		for _, p := range products {
			snap.Products[p.info.ID] = p.info
			if p.threshold != nil {
				snap.Defaults[p.info.ID] = *p.threshold
			}
		}

		overrides, err := collect(ctx, q, "load overrides", `
			SELECT o.product_id, o.warehouse_id, o.threshold
			FROM product_threshold_overrides o
			JOIN warehouses w ON w.id = o.warehouse_id
			WHERE w.company_id = $1`,
			func(row pgx.CollectableRow) (alert.StockRow, error) {
				var o alert.StockRow
				err := row.Scan(&o.ProductID, &o.WarehouseID, &o.Quantity)
				return o, err
			}, companyID)
		if err != nil {
			return err
		}
		for _, o := range overrides {
			snap.Overrides[alert.Key{ProductID: o.ProductID, WarehouseID: o.WarehouseID}] = o.Quantity
		}

		snap.Suppliers, err = collect(ctx, q, "load suppliers", `
			SELECT sp.product_id, s.id, s.name, s.contact_email, sp.lead_time_days
			FROM supplier_products sp
			JOIN suppliers s ON s.id = sp.supplier_id
			WHERE sp.product_id IN (`+scopedProducts+`)`,
			func(row pgx.CollectableRow) (alert.SupplierOption, error) {
				var s alert.SupplierOption
				err := row.Scan(&s.ProductID, &s.SupplierID, &s.Name, &s.ContactEmail, &s.LeadTimeDays)
				return s, err
			}, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func collect[T any](ctx context.Context, q Querier, op, sql string, fn pgx.RowToFunc[T], args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out, err := pgx.CollectRows(rows, fn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
