package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// GetByID devuelve (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	// Delete borra en cascada órdenes de venta, bodegas (con sus dependientes) y la empresa.
	// Debe ejecutarse dentro de una transacción.
	Delete(ctx context.Context, id int64) error
}
