package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa y asigna ID y CreatedAt.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO companies (name) VALUES ($1) RETURNING id, created_at`, c.Name,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return translate(err, "insert company")
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM companies WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Delete borra órdenes, bodegas (con sus dependientes) y la empresa. Llamar dentro de TxRunner.Run.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	stmts := []struct{ op, sql string }{
		{"delete company order items", `DELETE FROM sales_order_items WHERE order_id IN (SELECT id FROM sales_orders WHERE company_id = $1)`},
		{"delete company orders", `DELETE FROM sales_orders WHERE company_id = $1`},
	}
	for _, s := range stmts {
		if _, err := r.q.Exec(ctx, s.sql, id); err != nil {
			return translateDelete(err, s.op)
		}
	}

	rows, err := r.q.Query(ctx, `SELECT id FROM warehouses WHERE company_id = $1`, id)
	if err != nil {
		return fmt.Errorf("list company warehouses: %w", err)
	}
	warehouseIDs, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return fmt.Errorf("scan company warehouses: %w", err)
	}
	warehouses := NewWarehouseRepository(r.q)
	for _, wid := range warehouseIDs {
		if err := warehouses.Delete(ctx, wid); err != nil {
			return err
		}
	}

	tag, err := r.q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err, "delete company")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
