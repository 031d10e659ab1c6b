package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.ThresholdRepository = (*ThresholdRepo)(nil)

// ThresholdRepo umbrales de stock bajo sobre PostgreSQL.
type ThresholdRepo struct {
	q Querier
}

// NewThresholdRepository construye el adaptador de umbrales.
func NewThresholdRepository(q Querier) *ThresholdRepo {
	return &ThresholdRepo{q: q}
}

func (r *ThresholdRepo) SetDefault(ctx context.Context, t *entity.ProductThreshold) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_thresholds (product_id, threshold) VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE SET threshold = EXCLUDED.threshold`,
		t.ProductID, t.Threshold,
	)
	if err != nil {
		return translate(err, "set product threshold")
	}
	return nil
}

func (r *ThresholdRepo) SetOverride(ctx context.Context, t *entity.ProductThresholdOverride) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_threshold_overrides (product_id, warehouse_id, threshold) VALUES ($1, $2, $3)
		ON CONFLICT (product_id, warehouse_id) DO UPDATE SET threshold = EXCLUDED.threshold`,
		t.ProductID, t.WarehouseID, t.Threshold,
	)
	if err != nil {
		return translate(err, "set threshold override")
	}
	return nil
}

func (r *ThresholdRepo) DeleteOverride(ctx context.Context, productID, warehouseID int64) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM product_threshold_overrides WHERE product_id = $1 AND warehouse_id = $2`,
		productID, warehouseID,
	)
	if err != nil {
		return false, fmt.Errorf("delete threshold override: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
