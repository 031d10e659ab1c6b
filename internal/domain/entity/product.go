package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductTypeStandard tipo por defecto de producto.
const ProductTypeStandard = "standard"

// Product representa un producto o SKU del inventario (multi-bodega).
// El stock vive por bodega en Inventory; Price y Active son los únicos campos mutables de negocio.
type Product struct {
	ID          int64
	SKU         string          // único global
	Name        string
	Price       decimal.Decimal // NUMERIC(12,2)
	ProductType string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductBundle modela un kit: cuántas unidades del componente lleva el bundle.
// Reservado: ningún cálculo actual lo consume.
type ProductBundle struct {
	BundleID           int64
	ComponentProductID int64
	Quantity           int64
}
