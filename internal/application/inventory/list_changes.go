package inventory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ListInventoryChangesUseCase consulta el ledger de movimientos.
type ListInventoryChangesUseCase struct {
	changeRepo repository.InventoryChangeRepository
}

// NewListInventoryChangesUseCase construye el caso de uso.
func NewListInventoryChangesUseCase(changeRepo repository.InventoryChangeRepository) *ListInventoryChangesUseCase {
	return &ListInventoryChangesUseCase{changeRepo: changeRepo}
}

// Execute lista los movimientos, más recientes primero.
func (uc *ListInventoryChangesUseCase) Execute(ctx context.Context, filter repository.InventoryChangeFilter, page dto.PageRequest) (*dto.InventoryChangeListResponse, error) {
	page.DefaultPage()
	filter.Limit, filter.Offset = page.Limit, page.Offset

	changes, err := uc.changeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryChangeListResponse{
		Items: make([]dto.InventoryChangeResponse, 0, len(changes)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range changes {
		out.Items = append(out.Items, dto.InventoryChangeResponse{
			ID:            c.ID,
			ProductID:     c.ProductID,
			WarehouseID:   c.WarehouseID,
			QuantityDelta: c.QuantityDelta,
			Reason:        c.Reason,
			RefType:       c.RefType,
			RefID:         c.RefID,
			ChangedAt:     c.ChangedAt,
		})
	}
	return out, nil
}
