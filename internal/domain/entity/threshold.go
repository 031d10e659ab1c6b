package entity

// ProductThreshold umbral de stock bajo por defecto de un producto (todas las bodegas).
type ProductThreshold struct {
	ProductID int64
	Threshold int64
}

// ProductThresholdOverride umbral específico para (producto, bodega); tiene prioridad sobre el default.
type ProductThresholdOverride struct {
	ProductID   int64
	WarehouseID int64
	Threshold   int64
}
