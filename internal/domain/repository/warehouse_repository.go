package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Warehouse, error)
	// Delete devuelve domain.ErrRestricted si alguna línea de venta referencia la bodega;
	// si no, borra inventario, ledger y overrides de la bodega. Debe ejecutarse dentro de una transacción.
	Delete(ctx context.Context, id int64) error
}
