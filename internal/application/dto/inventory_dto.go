package dto

import (
	"encoding/json"
	"time"
)

// AdjustStockRequest body de POST /api/inventory/adjustments.
type AdjustStockRequest struct {
	ProductID   json.RawMessage `json:"product_id"`
	WarehouseID json.RawMessage `json:"warehouse_id"`
	Delta       json.RawMessage `json:"delta"`
	Reason      string          `json:"reason"`
	RefType     string          `json:"ref_type"`
	RefID       *int64          `json:"ref_id"`
}

// AdjustStockResponse cantidad resultante tras el ajuste.
type AdjustStockResponse struct {
	ProductID   int64 `json:"product_id"`
	WarehouseID int64 `json:"warehouse_id"`
	Quantity    int64 `json:"quantity"`
	Delta       int64 `json:"delta"`
}

// InventoryChangeResponse una fila del ledger.
type InventoryChangeResponse struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	WarehouseID   int64     `json:"warehouse_id"`
	QuantityDelta int64     `json:"quantity_delta"`
	Reason        string    `json:"reason"`
	RefType       string    `json:"ref_type"`
	RefID         *int64    `json:"ref_id"`
	ChangedAt     time.Time `json:"changed_at"`
}

// InventoryChangeListResponse ledger paginado.
type InventoryChangeListResponse struct {
	Items []InventoryChangeResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// SalesOrderItemRequest línea de venta.
type SalesOrderItemRequest struct {
	ProductID   int64 `json:"product_id"`
	WarehouseID int64 `json:"warehouse_id"`
	Quantity    int64 `json:"quantity"`
}

// CreateSalesOrderRequest body de POST /api/companies/{id}/sales-orders.
// ordered_at opcional (RFC 3339); por defecto ahora.
type CreateSalesOrderRequest struct {
	OrderedAt *time.Time              `json:"ordered_at"`
	Items     []SalesOrderItemRequest `json:"items"`
}

// SalesOrderResponse orden creada.
type SalesOrderResponse struct {
	ID        int64                   `json:"id"`
	CompanyID int64                   `json:"company_id"`
	OrderedAt time.Time               `json:"ordered_at"`
	Items     []SalesOrderItemRequest `json:"items"`
}
