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

// CreateProductUseCase crea un producto con su stock inicial en una bodega, de forma atómica:
// producto, fila de inventario y fila del ledger se escriben en la misma transacción.
type CreateProductUseCase struct {
	txRunner      repository.TxRunner
	warehouseRepo repository.WarehouseRepository
	cache         ports.AlertCache
	now           func() time.Time
}

// NewCreateProductUseCase construye el caso de uso. cache puede ser nil.
func NewCreateProductUseCase(
	txRunner repository.TxRunner,
	warehouseRepo repository.WarehouseRepository,
	cache ports.AlertCache,
) *CreateProductUseCase {
	return &CreateProductUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		cache:         ports.OrNop(cache),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ProductPath localizador canónico (relativo) de un producto.
func ProductPath(id int64) string {
	return fmt.Sprintf("/api/products/%d", id)
}

type createProductInput struct {
	warehouseID     int64
	initialQuantity int64
	product         *entity.Product
}

// validateCreateProduct revisa todo el request antes de tocar la base de datos.
func validateCreateProduct(in dto.CreateProductRequest) (*createProductInput, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" || dto.IsMissing(in.Price) || dto.IsMissing(in.WarehouseID) {
		return nil, domain.NewValidationError("faltan campos obligatorios: name, sku, price, warehouse_id")
	}
	price, err := dto.ParsePrice(in.Price)
	if err != nil {
		return nil, domain.NewValidationError("price: %v", err)
	}
	warehouseID, err := dto.ParseInt(in.WarehouseID)
	if err != nil {
		return nil, domain.NewValidationError("warehouse_id: %v", err)
	}

	var qty int64
	if len(in.InitialQuantity) > 0 {
		// presente pero null también es inválido
		qty, err = dto.ParseNonNegativeInt(in.InitialQuantity)
		if err != nil {
			return nil, domain.NewValidationError("initial_quantity: %v", err)
		}
	}

	return &createProductInput{
		warehouseID:     warehouseID,
		initialQuantity: qty,
		product: &entity.Product{
			SKU:         sku,
			Name:        name,
			Price:       price,
			ProductType: entity.ProductTypeStandard,
			Active:      true,
		},
	}, nil
}

// Execute valida, verifica la bodega y ejecuta la transacción de creación.
func (uc *CreateProductUseCase) Execute(ctx context.Context, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	input, err := validateCreateProduct(in)
	if err != nil {
		return nil, err
	}

	wh, err := uc.warehouseRepo.GetByID(ctx, input.warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("warehouse_id %d: %w", input.warehouseID, domain.ErrNotFound)
	}

	product := input.product
	var inv *entity.Inventory
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		now := uc.now()
		product.CreatedAt, product.UpdatedAt = now, now
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		// Bloquea la fila (si existe) antes de incrementar
		if _, err := repos.Inventory.GetForUpdate(ctx, product.ID, input.warehouseID); err != nil {
			return err
		}
		inv, err = repos.Inventory.AddQuantity(ctx, product.ID, input.warehouseID, input.initialQuantity)
		if err != nil {
			return err
		}
		refID := product.ID
		return repos.Changes.Append(ctx, &entity.InventoryChange{
			ProductID:     product.ID,
			WarehouseID:   input.warehouseID,
			QuantityDelta: input.initialQuantity,
			Reason:        entity.ChangeReasonInitialStock,
			RefType:       entity.RefTypeProductCreation,
			RefID:         &refID,
			ChangedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateCompany(ctx, wh.CompanyID)

	return &dto.CreateProductResponse{
		Message: "Product created",
		Product: dto.ProductSummary{
			ID:    product.ID,
			Name:  product.Name,
			SKU:   product.SKU,
			Price: product.Price.StringFixed(2),
		},
		Inventory: dto.InventorySummary{WarehouseID: inv.WarehouseID, Quantity: inv.Quantity},
		Links:     dto.Links{Self: ProductPath(product.ID)},
	}, nil
}
