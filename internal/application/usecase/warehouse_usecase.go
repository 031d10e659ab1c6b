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

// WarehouseUseCase aplica reglas de negocio para bodegas.
type WarehouseUseCase struct {
	repo        repository.WarehouseRepository
	companyRepo repository.CompanyRepository
	txRunner    repository.TxRunner
	cache       ports.AlertCache
}

// NewWarehouseUseCase construye el caso de uso. cache puede ser nil.
func NewWarehouseUseCase(
	repo repository.WarehouseRepository,
	companyRepo repository.CompanyRepository,
	txRunner repository.TxRunner,
	cache ports.AlertCache,
) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, companyRepo: companyRepo, txRunner: txRunner, cache: ports.OrNop(cache)}
}

// Create crea una bodega para la empresa. El nombre es único dentro de la empresa.
func (uc *WarehouseUseCase) Create(ctx context.Context, companyID int64, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name es obligatorio")
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("company %d: %w", companyID, domain.ErrNotFound)
	}
	w := &entity.Warehouse{
		CompanyID: companyID,
		Name:      name,
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	uc.cache.InvalidateCompany(ctx, companyID)
	return entityToWarehouseResponse(w), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("warehouse %d: %w", id, domain.ErrNotFound)
	}
	return entityToWarehouseResponse(w), nil
}

// ListByCompany lista las bodegas de una empresa.
func (uc *WarehouseUseCase) ListByCompany(ctx context.Context, companyID int64) (*dto.WarehouseListResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("company %d: %w", companyID, domain.ErrNotFound)
	}
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *entityToWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Items: items}, nil
}

// Delete borra la bodega con su inventario, ledger y overrides. ErrRestricted si tiene ventas.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id int64) error {
	var companyID int64
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		w, err := repos.Warehouses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("warehouse %d: %w", id, domain.ErrNotFound)
		}
		companyID = w.CompanyID
		return repos.Warehouses.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.cache.InvalidateCompany(ctx, companyID)
	return nil
}

func entityToWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
	}
}
