package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// AdjustStockUseCase aplica un ajuste manual (+/-) sobre el stock de un producto en una bodega.
type AdjustStockUseCase struct {
	txRunner      repository.TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	cache         ports.AlertCache
	now           func() time.Time
}

// NewAdjustStockUseCase construye el caso de uso. cache puede ser nil.
func NewAdjustStockUseCase(
	txRunner repository.TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	cache ports.AlertCache,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		cache:         ports.OrNop(cache),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Execute bloquea la fila de inventario, rechaza resultados negativos y registra el ledger.
func (uc *AdjustStockUseCase) Execute(ctx context.Context, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if dto.IsMissing(in.ProductID) || dto.IsMissing(in.WarehouseID) || dto.IsMissing(in.Delta) {
		return nil, domain.NewValidationError("faltan campos obligatorios: product_id, warehouse_id, delta")
	}
	productID, err := dto.ParseInt(in.ProductID)
	if err != nil {
		return nil, domain.NewValidationError("product_id: %v", err)
	}
	warehouseID, err := dto.ParseInt(in.WarehouseID)
	if err != nil {
		return nil, domain.NewValidationError("warehouse_id: %v", err)
	}
	delta, err := dto.ParseInt(in.Delta)
	if err != nil {
		return nil, domain.NewValidationError("delta: %v", err)
	}
	if delta == 0 {
		return nil, domain.NewValidationError("delta no puede ser 0")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = entity.ChangeReasonAdjustment
	}
	refType := strings.TrimSpace(in.RefType)
	if refType == "" {
		refType = entity.RefTypeManual
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product_id %d: %w", productID, domain.ErrNotFound)
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("warehouse_id %d: %w", warehouseID, domain.ErrNotFound)
	}

	var inv *entity.Inventory
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		current, err := repos.Inventory.GetForUpdate(ctx, productID, warehouseID)
		if err != nil {
			return err
		}
		var qty int64
		if current != nil {
			qty = current.Quantity
		}
		if qty+delta < 0 {
			return domain.ErrInsufficientStock
		}
		inv, err = repos.Inventory.AddQuantity(ctx, productID, warehouseID, delta)
		if err != nil {
			return err
		}
		return repos.Changes.Append(ctx, &entity.InventoryChange{
			ProductID:     productID,
			WarehouseID:   warehouseID,
			QuantityDelta: delta,
			Reason:        reason,
			RefType:       refType,
			RefID:         in.RefID,
			ChangedAt:     uc.now(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateCompany(ctx, wh.CompanyID)

	return &dto.AdjustStockResponse{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    inv.Quantity,
		Delta:       delta,
	}, nil
}
