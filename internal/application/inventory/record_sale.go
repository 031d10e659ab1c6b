package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/alert"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// RecordSaleUseCase registra una orden de venta y descuenta el stock de cada línea.
type RecordSaleUseCase struct {
	txRunner      repository.TxRunner
	companyRepo   repository.CompanyRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	cache         ports.AlertCache
	now           func() time.Time
}

// NewRecordSaleUseCase construye el caso de uso. cache puede ser nil.
func NewRecordSaleUseCase(
	txRunner repository.TxRunner,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	cache ports.AlertCache,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		txRunner:      txRunner,
		companyRepo:   companyRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		cache:         ports.OrNop(cache),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// mergeItems suma las líneas repetidas (producto, bodega) y las ordena por clave,
// así dos ventas concurrentes bloquean filas de inventario en el mismo orden.
func mergeItems(items []dto.SalesOrderItemRequest) ([]entity.SalesOrderItem, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("items: la orden debe tener al menos una línea")
	}
	qty := make(map[alert.Key]int64, len(items))
	for i, it := range items {
		if it.ProductID <= 0 || it.WarehouseID <= 0 {
			return nil, domain.NewValidationError("items[%d]: product_id y warehouse_id son obligatorios", i)
		}
		if it.Quantity <= 0 {
			return nil, domain.NewValidationError("items[%d]: quantity debe ser > 0", i)
		}
		qty[alert.Key{ProductID: it.ProductID, WarehouseID: it.WarehouseID}] += it.Quantity
	}
	out := make([]entity.SalesOrderItem, 0, len(qty))
	for k, q := range qty {
		out = append(out, entity.SalesOrderItem{ProductID: k.ProductID, WarehouseID: k.WarehouseID, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out, nil
}

// Execute valida la orden, verifica empresa, bodegas y productos, y en una transacción
// inserta la orden, descuenta stock y escribe el ledger. Sin stock suficiente no se escribe nada.
func (uc *RecordSaleUseCase) Execute(ctx context.Context, companyID int64, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	items, err := mergeItems(in.Items)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	orderedAt := now
	if in.OrderedAt != nil {
		orderedAt = in.OrderedAt.UTC()
		if orderedAt.After(now) {
			return nil, domain.NewValidationError("ordered_at no puede estar en el futuro")
		}
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("company %d: %w", companyID, domain.ErrNotFound)
	}
	checkedWh := make(map[int64]bool)
	checkedProd := make(map[int64]bool)
	for _, it := range items {
		if !checkedWh[it.WarehouseID] {
			wh, err := uc.warehouseRepo.GetByID(ctx, it.WarehouseID)
			if err != nil {
				return nil, err
			}
			if wh == nil || wh.CompanyID != companyID {
				return nil, fmt.Errorf("warehouse_id %d en la empresa %d: %w", it.WarehouseID, companyID, domain.ErrNotFound)
			}
			checkedWh[it.WarehouseID] = true
		}
		if !checkedProd[it.ProductID] {
			p, err := uc.productRepo.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, fmt.Errorf("product_id %d: %w", it.ProductID, domain.ErrNotFound)
			}
			checkedProd[it.ProductID] = true
		}
	}

	order := &entity.SalesOrder{CompanyID: companyID, OrderedAt: orderedAt, Items: items}
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Sales.Create(ctx, order); err != nil {
			return err
		}
		for _, it := range order.Items {
			current, err := repos.Inventory.GetForUpdate(ctx, it.ProductID, it.WarehouseID)
			if err != nil {
				return err
			}
			if current == nil || current.Quantity < it.Quantity {
				return fmt.Errorf("producto %d en bodega %d: %w", it.ProductID, it.WarehouseID, domain.ErrInsufficientStock)
			}
			if _, err := repos.Inventory.AddQuantity(ctx, it.ProductID, it.WarehouseID, -it.Quantity); err != nil {
				return err
			}
			orderID := order.ID
			if err := repos.Changes.Append(ctx, &entity.InventoryChange{
				ProductID:     it.ProductID,
				WarehouseID:   it.WarehouseID,
				QuantityDelta: -it.Quantity,
				Reason:        entity.ChangeReasonSale,
				RefType:       entity.RefTypeSalesOrder,
				RefID:         &orderID,
				ChangedAt:     now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateCompany(ctx, companyID)

	resp := &dto.SalesOrderResponse{
		ID:        order.ID,
		CompanyID: order.CompanyID,
		OrderedAt: order.OrderedAt,
		Items:     make([]dto.SalesOrderItemRequest, 0, len(order.Items)),
	}
	for _, it := range order.Items {
		resp.Items = append(resp.Items, dto.SalesOrderItemRequest{ProductID: it.ProductID, WarehouseID: it.WarehouseID, Quantity: it.Quantity})
	}
	return resp, nil
}
