package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ThresholdUseCase umbrales de stock bajo: default por producto y override por bodega.
type ThresholdUseCase struct {
	repo          repository.ThresholdRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	cache         ports.AlertCache
}

// NewThresholdUseCase construye el caso de uso. cache puede ser nil.
func NewThresholdUseCase(
	repo repository.ThresholdRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	cache ports.AlertCache,
) *ThresholdUseCase {
	return &ThresholdUseCase{repo: repo, productRepo: productRepo, warehouseRepo: warehouseRepo, cache: ports.OrNop(cache)}
}

func parseThreshold(in dto.ThresholdRequest) (int64, error) {
	if dto.IsMissing(in.Threshold) {
		return 0, domain.NewValidationError("threshold es obligatorio")
	}
	t, err := dto.ParseNonNegativeInt(in.Threshold)
	if err != nil {
		return 0, domain.NewValidationError("threshold: %v", err)
	}
	return t, nil
}

func (uc *ThresholdUseCase) requireProduct(ctx context.Context, id int64) error {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (uc *ThresholdUseCase) requireWarehouse(ctx context.Context, id int64) error {
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("warehouse %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SetDefault fija el umbral default del producto.
func (uc *ThresholdUseCase) SetDefault(ctx context.Context, productID int64, in dto.ThresholdRequest) (*dto.ThresholdResponse, error) {
	t, err := parseThreshold(in)
	if err != nil {
		return nil, err
	}
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := uc.repo.SetDefault(ctx, &entity.ProductThreshold{ProductID: productID, Threshold: t}); err != nil {
		return nil, err
	}
	uc.cache.InvalidateAll(ctx)
	return &dto.ThresholdResponse{ProductID: productID, Threshold: t}, nil
}

// SetOverride fija el umbral del producto en una bodega; tiene prioridad sobre el default.
func (uc *ThresholdUseCase) SetOverride(ctx context.Context, productID, warehouseID int64, in dto.ThresholdRequest) (*dto.ThresholdResponse, error) {
	t, err := parseThreshold(in)
	if err != nil {
		return nil, err
	}
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := uc.requireWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	o := &entity.ProductThresholdOverride{ProductID: productID, WarehouseID: warehouseID, Threshold: t}
	if err := uc.repo.SetOverride(ctx, o); err != nil {
		return nil, err
	}
	uc.cache.InvalidateAll(ctx)
	return &dto.ThresholdResponse{ProductID: productID, WarehouseID: &warehouseID, Threshold: t}, nil
}

// DeleteOverride quita el override; ErrNotFound si no existía.
func (uc *ThresholdUseCase) DeleteOverride(ctx context.Context, productID, warehouseID int64) error {
	existed, err := uc.repo.DeleteOverride(ctx, productID, warehouseID)
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("override (%d, %d): %w", productID, warehouseID, domain.ErrNotFound)
	}
	uc.cache.InvalidateAll(ctx)
	return nil
}
