package dto

import "encoding/json"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
}

// LinkSupplierProductRequest body de PUT /api/suppliers/{id}/products/{product_id}.
// lead_time_days ausente = 7.
type LinkSupplierProductRequest struct {
	LeadTimeDays json.RawMessage `json:"lead_time_days"`
	CompanyID    *int64          `json:"company_id"`
}

// SupplierProductResponse vínculo guardado.
type SupplierProductResponse struct {
	SupplierID   int64  `json:"supplier_id"`
	ProductID    int64  `json:"product_id"`
	CompanyID    *int64 `json:"company_id"`
	LeadTimeDays int    `json:"lead_time_days"`
}
