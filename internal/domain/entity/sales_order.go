package entity

import "time"

// SalesOrder cabecera de una venta de la empresa.
type SalesOrder struct {
	ID        int64
	CompanyID int64
	OrderedAt time.Time // UTC
	Items     []SalesOrderItem
}

// SalesOrderItem línea de venta. Clave (OrderID, ProductID, WarehouseID).
type SalesOrderItem struct {
	OrderID     int64
	ProductID   int64
	WarehouseID int64
	Quantity    int64
}
