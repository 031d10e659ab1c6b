package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var (
	_ repository.InventoryRepository       = (*InventoryRepo)(nil)
	_ repository.InventoryChangeRepository = (*InventoryChangeRepo)(nil)
)

// InventoryRepo stock por (producto, bodega) sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega.
func (r *InventoryRepo) Get(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	return r.get(ctx, `
		SELECT product_id, warehouse_id, quantity, safety_stock
		FROM inventories WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	return r.get(ctx, `
		SELECT product_id, warehouse_id, quantity, safety_stock
		FROM inventories WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`, productID, warehouseID)
}

func (r *InventoryRepo) get(ctx context.Context, query string, productID, warehouseID int64) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, warehouseID).
		Scan(&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.SafetyStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// AddQuantity suma delta sobre la fila actual (no sobre un valor leído antes), así dos
// transacciones concurrentes nunca pisan el incremento de la otra. El CHECK quantity >= 0
// convierte un resultado negativo en domain.ErrInsufficientStock.
func (r *InventoryRepo) AddQuantity(ctx context.Context, productID, warehouseID, delta int64) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, `
		INSERT INTO inventories (product_id, warehouse_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = inventories.quantity + EXCLUDED.quantity
		RETURNING product_id, warehouse_id, quantity, safety_stock`,
		productID, warehouseID, delta,
	).Scan(&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.SafetyStock)
	if err != nil {
		return nil, translate(err, "add inventory quantity")
	}
	return &inv, nil
}

// InventoryChangeRepo ledger de movimientos sobre PostgreSQL.
type InventoryChangeRepo struct {
	q Querier
}

// NewInventoryChangeRepository construye el adaptador del ledger.
func NewInventoryChangeRepository(q Querier) *InventoryChangeRepo {
	return &InventoryChangeRepo{q: q}
}

// Append registra un movimiento. ref_type vacío se guarda como NULL.
func (r *InventoryChangeRepo) Append(ctx context.Context, c *entity.InventoryChange) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO inventory_changes (product_id, warehouse_id, quantity_delta, reason, ref_type, ref_id, changed_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING id`,
		c.ProductID, c.WarehouseID, c.QuantityDelta, c.Reason, c.RefType, c.RefID, c.ChangedAt,
	).Scan(&c.ID)
	if err != nil {
		return translate(err, "insert inventory change")
	}
	return nil
}

// List devuelve movimientos filtrados, más recientes primero.
func (r *InventoryChangeRepo) List(ctx context.Context, f repository.InventoryChangeFilter) ([]*entity.InventoryChange, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != nil {
		add("product_id = $%d", *f.ProductID)
	}
	if f.WarehouseID != nil {
		add("warehouse_id = $%d", *f.WarehouseID)
	}
	if f.From != nil {
		add("changed_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("changed_at <= $%d", *f.To)
	}

	query := `SELECT id, product_id, warehouse_id, quantity_delta, reason, COALESCE(ref_type, ''), ref_id, changed_at
		FROM inventory_changes`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY changed_at DESC, id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory changes: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.InventoryChange, error) {
		var c entity.InventoryChange
		err := row.Scan(&c.ID, &c.ProductID, &c.WarehouseID, &c.QuantityDelta, &c.Reason, &c.RefType, &c.RefID, &c.ChangedAt)
		c.ChangedAt = c.ChangedAt.UTC()
		return &c, err
	})
}
