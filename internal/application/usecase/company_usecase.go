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

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	txRunner repository.TxRunner
	cache    ports.AlertCache
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia. cache puede ser nil.
func NewCompanyUseCase(repo repository.CompanyRepository, txRunner repository.TxRunner, cache ports.AlertCache) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, txRunner: txRunner, cache: ports.OrNop(cache)}
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name es obligatorio")
	}
	company := &entity.Company{Name: name, CreatedAt: time.Now().UTC()}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("company %d: %w", id, domain.ErrNotFound)
	}
	return entityToCompanyResponse(company), nil
}

// Delete borra la empresa con sus órdenes y bodegas en una transacción.
func (uc *CompanyUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		return repos.Companies.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.cache.InvalidateCompany(ctx, id)
	return nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}
