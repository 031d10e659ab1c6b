package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores y sus vínculos con productos.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	// LinkProduct inserta o actualiza el lead time del par (proveedor, producto).
	LinkProduct(ctx context.Context, link *entity.SupplierProduct) error
	Delete(ctx context.Context, id int64) error
}
