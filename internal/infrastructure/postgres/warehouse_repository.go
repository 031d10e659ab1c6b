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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO warehouses (company_id, name, address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		w.CompanyID, w.Name, w.Address,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return translate(err, "insert warehouse")
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, name, address, created_at FROM warehouses WHERE id = $1`, id,
	).Scan(&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// ListByCompany lista las bodegas de una empresa ordenadas por ID.
func (r *WarehouseRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, name, address, created_at
		FROM warehouses WHERE company_id = $1 ORDER BY id`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Delete borra ledger, inventario y overrides de la bodega y luego la bodega.
// ErrRestricted si alguna línea de venta la referencia.
func (r *WarehouseRepo) Delete(ctx context.Context, id int64) error {
	var referenced bool
	if err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sales_order_items WHERE warehouse_id = $1)`, id,
	).Scan(&referenced); err != nil {
		return fmt.Errorf("check warehouse sales: %w", err)
	}
	if referenced {
		return domain.ErrRestricted
	}

	for _, s := range []struct{ op, sql string }{
		{"delete warehouse changes", `DELETE FROM inventory_changes WHERE warehouse_id = $1`},
		{"delete warehouse inventory", `DELETE FROM inventories WHERE warehouse_id = $1`},
		{"delete warehouse overrides", `DELETE FROM product_threshold_overrides WHERE warehouse_id = $1`},
	} {
		if _, err := r.q.Exec(ctx, s.sql, id); err != nil {
			return translateDelete(err, s.op)
		}
	}

	tag, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err, "delete warehouse")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
