package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create devuelve domain.ErrDuplicate si el SKU ya existe.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete devuelve domain.ErrRestricted si alguna línea de venta referencia el producto;
	// si no, borra inventario, ledger, umbrales, vínculos con proveedores y bundles.
	Delete(ctx context.Context, id int64) error
}

// BundleRepository componentes de productos tipo kit. Reservado: el cálculo de alertas no lo usa.
type BundleRepository interface {
	Upsert(ctx context.Context, bundle *entity.ProductBundle) error
	ListComponents(ctx context.Context, bundleID int64) ([]*entity.ProductBundle, error)
}
