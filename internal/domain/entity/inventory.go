package entity

import "time"

// Inventory stock actual de un producto en una bodega. Clave (ProductID, WarehouseID).
// Quantity nunca baja de 0.
type Inventory struct {
	ProductID   int64
	WarehouseID int64
	Quantity    int64
	SafetyStock int64
}

// Razones y tipos de referencia usados en el ledger.
const (
	ChangeReasonInitialStock = "initial stock"
	ChangeReasonSale         = "sale"
	ChangeReasonAdjustment   = "adjustment"

	RefTypeProductCreation = "product_creation"
	RefTypeSalesOrder      = "sales_order"
	RefTypeManual          = "manual"
)

// InventoryChange fila append-only del ledger: una por cada mutación de cantidad.
type InventoryChange struct {
	ID            int64
	ProductID     int64
	WarehouseID   int64
	QuantityDelta int64 // positivo entrada, negativo salida
	Reason        string
	RefType       string
	RefID         *int64
	ChangedAt     time.Time // UTC
}
