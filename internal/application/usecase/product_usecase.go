package usecase

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

// ProductUseCase consulta, actualiza y borra productos. La creación con stock inicial vive en
// inventory.CreateProductUseCase.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner repository.TxRunner
	cache    ports.AlertCache
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, txRunner repository.TxRunner, cache ports.AlertCache) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, cache: ports.OrNop(cache)}
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return entityToProductResponse(p), nil
}

// Update modifica nombre, precio, tipo o estado activo. Campos ausentes no cambian.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name no puede estar vacío")
		}
		p.Name = name
	}
	if len(in.Price) > 0 {
		price, err := dto.ParsePrice(in.Price)
		if err != nil {
			return nil, domain.NewValidationError("price: %v", err)
		}
		p.Price = price
	}
	if in.ProductType != nil {
		pt := strings.TrimSpace(*in.ProductType)
		if pt == "" {
			return nil, domain.NewValidationError("product_type no puede estar vacío")
		}
		p.ProductType = pt
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.cache.InvalidateAll(ctx)
	return entityToProductResponse(p), nil
}

// Delete borra el producto y sus dependientes. ErrRestricted si alguna venta lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		return repos.Products.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.cache.InvalidateAll(ctx)
	return nil
}

func entityToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		ProductType: p.ProductType,
		Active:      p.Active,
	}
}
