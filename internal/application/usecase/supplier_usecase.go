package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// SupplierUseCase gestiona proveedores y sus plazos de entrega por producto.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	productRepo repository.ProductRepository
	txRunner    repository.TxRunner
	cache       ports.AlertCache
}

// NewSupplierUseCase construye el caso de uso. cache puede ser nil.
func NewSupplierUseCase(
	repo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	txRunner repository.TxRunner,
	cache ports.AlertCache,
) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, productRepo: productRepo, txRunner: txRunner, cache: ports.OrNop(cache)}
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name es obligatorio")
	}
	s := &entity.Supplier{
		Name:         name,
		ContactEmail: optionalString(in.ContactEmail),
		Phone:        optionalString(in.Phone),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return &dto.SupplierResponse{ID: s.ID, Name: s.Name, ContactEmail: s.ContactEmail, Phone: s.Phone}, nil
}

// LinkProduct crea o actualiza el vínculo proveedor-producto. lead_time_days ausente = 7.
func (uc *SupplierUseCase) LinkProduct(ctx context.Context, supplierID, productID int64, in dto.LinkSupplierProductRequest) (*dto.SupplierProductResponse, error) {
	lead := int64(entity.DefaultLeadTimeDays)
	if len(in.LeadTimeDays) > 0 {
		var err error
		lead, err = dto.ParseNonNegativeInt(in.LeadTimeDays)
		if err != nil {
			return nil, domain.NewValidationError("lead_time_days: %v", err)
		}
		if lead > 3650 {
			return nil, domain.NewValidationError("lead_time_days: fuera de rango")
		}
	}

	s, err := uc.repo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("supplier %d: %w", supplierID, domain.ErrNotFound)
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}

	link := &entity.SupplierProduct{
		SupplierID:   supplierID,
		ProductID:    productID,
		CompanyID:    in.CompanyID,
		LeadTimeDays: int(lead),
	}
	if err := uc.repo.LinkProduct(ctx, link); err != nil {
		return nil, err
	}
	uc.cache.InvalidateAll(ctx)
	return &dto.SupplierProductResponse{
		SupplierID:   link.SupplierID,
		ProductID:    link.ProductID,
		CompanyID:    link.CompanyID,
		LeadTimeDays: link.LeadTimeDays,
	}, nil
}

// Delete borra el proveedor y sus vínculos.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		return repos.Suppliers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.cache.InvalidateAll(ctx)
	return nil
}
