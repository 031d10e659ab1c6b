package dto

// AlertSupplierDTO proveedor sugerido; todos los campos null si el producto no tiene proveedor.
type AlertSupplierDTO struct {
	ID           *int64  `json:"id"`
	Name         *string `json:"name"`
	ContactEmail *string `json:"contact_email"`
}

// LowStockAlertDTO una alerta de stock bajo.
type LowStockAlertDTO struct {
	ProductID         int64            `json:"product_id"`
	ProductName       string           `json:"product_name"`
	SKU               string           `json:"sku"`
	WarehouseID       int64            `json:"warehouse_id"`
	WarehouseName     string           `json:"warehouse_name"`
	CurrentStock      int64            `json:"current_stock"`
	Threshold         int64            `json:"threshold"`
	DaysUntilStockout *int64           `json:"days_until_stockout"`
	Supplier          AlertSupplierDTO `json:"supplier"`

	// Solo para el reporte PDF; no se serializa en la API.
	AverageDailyRate string `json:"-"`
}

// LowStockAlertsResponse respuesta de GET /api/companies/{id}/alerts/low-stock.
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
	Days        int                `json:"-"`
}
