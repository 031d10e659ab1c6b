package dto

import "encoding/json"

// CreateProductRequest body de POST /api/products.
// price, warehouse_id e initial_quantity se reciben crudos para aceptar número o string
// y validar antes de cualquier escritura.
type CreateProductRequest struct {
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Price           json.RawMessage `json:"price"`
	WarehouseID     json.RawMessage `json:"warehouse_id"`
	InitialQuantity json.RawMessage `json:"initial_quantity"`
}

// UpdateProductRequest body de PATCH /api/products/{id}. Campos nil no se modifican.
type UpdateProductRequest struct {
	Name        *string         `json:"name"`
	Price       json.RawMessage `json:"price"`
	ProductType *string         `json:"product_type"`
	Active      *bool           `json:"active"`
}

// ProductSummary datos del producto en la respuesta de creación.
type ProductSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Price string `json:"price"`
}

// InventorySummary cantidad resultante en la bodega.
type InventorySummary struct {
	WarehouseID int64 `json:"warehouse_id"`
	Quantity    int64 `json:"quantity"`
}

// Links localizadores del recurso.
type Links struct {
	Self string `json:"self"`
}

// CreateProductResponse respuesta 201 de POST /api/products.
type CreateProductResponse struct {
	Message   string           `json:"message"`
	Product   ProductSummary   `json:"product"`
	Inventory InventorySummary `json:"inventory"`
	Links     Links            `json:"links"`
}

// ProductResponse salida de GET /api/products/{id}. Price con 2 decimales.
type ProductResponse struct {
	ID          int64  `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	ProductType string `json:"product_type"`
	Active      bool   `json:"active"`
}

// ThresholdRequest body para umbral default u override.
type ThresholdRequest struct {
	Threshold json.RawMessage `json:"threshold"`
}

// ThresholdResponse umbral guardado.
type ThresholdResponse struct {
	ProductID   int64  `json:"product_id"`
	WarehouseID *int64 `json:"warehouse_id,omitempty"`
	Threshold   int64  `json:"threshold"`
}
