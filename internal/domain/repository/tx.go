package repository

import "context"

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Companies  CompanyRepository
	Warehouses WarehouseRepository
	Products   ProductRepository
	Bundles    BundleRepository
	Suppliers  SupplierRepository
	Inventory  InventoryRepository
	Changes    InventoryChangeRepository
	Sales      SalesOrderRepository
	Thresholds ThresholdRepository
}

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback completo ante cualquier error.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
