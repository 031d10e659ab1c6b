package postgres

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo órdenes de venta sobre PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador de órdenes de venta.
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create inserta la cabecera y sus líneas. Llamar dentro de TxRunner.Run.
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO sales_orders (company_id, ordered_at) VALUES ($1, $2) RETURNING id`,
		o.CompanyID, o.OrderedAt,
	).Scan(&o.ID)
	if err != nil {
		return translate(err, "insert sales order")
	}
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		if _, err := r.q.Exec(ctx, `
			INSERT INTO sales_order_items (order_id, product_id, warehouse_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			it.OrderID, it.ProductID, it.WarehouseID, it.Quantity,
		); err != nil {
			return translate(err, "insert sales order item")
		}
	}
	return nil
}
