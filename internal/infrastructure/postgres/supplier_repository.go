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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores y vínculos proveedor-producto sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact_email, phone) VALUES ($1, $2, $3) RETURNING id`,
		s.Name, s.ContactEmail, s.Phone,
	).Scan(&s.ID)
	if err != nil {
		return translate(err, "insert supplier")
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `SELECT id, name, contact_email, phone FROM suppliers WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.ContactEmail, &s.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// LinkProduct inserta o actualiza el lead time del par.
func (r *SupplierRepo) LinkProduct(ctx context.Context, l *entity.SupplierProduct) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO supplier_products (supplier_id, product_id, company_id, lead_time_days)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (supplier_id, product_id)
		DO UPDATE SET company_id = EXCLUDED.company_id, lead_time_days = EXCLUDED.lead_time_days`,
		l.SupplierID, l.ProductID, l.CompanyID, l.LeadTimeDays,
	)
	if err != nil {
		return translate(err, "link supplier product")
	}
	return nil
}

// Delete borra los vínculos del proveedor y el proveedor.
func (r *SupplierRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM supplier_products WHERE supplier_id = $1`, id); err != nil {
		return translateDelete(err, "delete supplier links")
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err, "delete supplier")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
