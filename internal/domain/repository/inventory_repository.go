package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// InventoryRepository define el puerto para consultar/actualizar stock por (producto, bodega).
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	// Get devuelve (nil, nil) si no hay fila para el par.
	Get(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error)
	// AddQuantity crea la fila si no existe o suma delta a la existente y devuelve el resultado.
	// domain.ErrInsufficientStock si la cantidad resultante sería negativa.
	AddQuantity(ctx context.Context, productID, warehouseID, delta int64) (*entity.Inventory, error)
}

// InventoryChangeFilter filtros para listar el ledger.
type InventoryChangeFilter struct {
	ProductID   *int64
	WarehouseID *int64
	From, To    *time.Time
	Limit       int
	Offset      int
}

// InventoryChangeRepository ledger append-only de mutaciones de cantidad.
type InventoryChangeRepository interface {
	Append(ctx context.Context, change *entity.InventoryChange) error
	// List devuelve los cambios más recientes primero.
	List(ctx context.Context, filter InventoryChangeFilter) ([]*entity.InventoryChange, error)
}
