package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// SalesOrderRepository persistencia de órdenes de venta y sus líneas.
type SalesOrderRepository interface {
	// Create inserta cabecera y líneas; asigna order.ID y OrderID en cada línea.
	Create(ctx context.Context, order *entity.SalesOrder) error
}
