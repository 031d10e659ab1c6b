package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ThresholdRepository umbrales de stock bajo: default por producto y override por (producto, bodega).
type ThresholdRepository interface {
	SetDefault(ctx context.Context, t *entity.ProductThreshold) error
	SetOverride(ctx context.Context, t *entity.ProductThresholdOverride) error
	// DeleteOverride informa si existía el override.
	DeleteOverride(ctx context.Context, productID, warehouseID int64) (bool, error)
}
