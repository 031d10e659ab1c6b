package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository   = (*CompanyRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.BundleRepository    = (*BundleRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
)

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ acc access }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.acc(func(st *state) error {
		for _, other := range st.companies {
			if other.Name == c.Name {
				return domain.ErrDuplicate
			}
		}
		c.ID = st.nextID("companies")
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	var out *entity.Company
	err := r.acc(func(st *state) error {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) Delete(_ context.Context, id int64) error {
	return r.acc(func(st *state) error {
		if _, ok := st.companies[id]; !ok {
			return domain.ErrNotFound
		}
		for oid, o := range st.orders {
			if o.CompanyID == id {
				delete(st.orders, oid)
			}
		}
		for wid, w := range st.warehouses {
			if w.CompanyID != id {
				continue
			}
			if err := deleteWarehouse(st, wid); err != nil {
				return err
			}
		}
		for k, l := range st.supplierProducts {
			if l.CompanyID != nil && *l.CompanyID == id {
				l.CompanyID = nil
				st.supplierProducts[k] = l
			}
		}
		delete(st.companies, id)
		return nil
	})
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ acc access }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.acc(func(st *state) error {
		if _, ok := st.companies[w.CompanyID]; !ok {
			return domain.ErrNotFound
		}
		for _, other := range st.warehouses {
			if other.CompanyID == w.CompanyID && other.Name == w.Name {
				return domain.ErrDuplicate
			}
		}
		w.ID = st.nextID("warehouses")
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.acc(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	err := r.acc(func(st *state) error {
		for _, w := range st.warehouses {
			if w.CompanyID == companyID {
				w := w
				list = append(list, &w)
			}
		}
		return nil
	})
	sortByID(list, func(w *entity.Warehouse) int64 { return w.ID })
	return list, err
}

func (r *WarehouseRepo) Delete(_ context.Context, id int64) error {
	return r.acc(func(st *state) error {
		if _, ok := st.warehouses[id]; !ok {
			return domain.ErrNotFound
		}
		return deleteWarehouse(st, id)
	})
}

func deleteWarehouse(st *state, id int64) error {
	for _, o := range st.orders {
		for _, it := range o.Items {
			if it.WarehouseID == id {
				return domain.ErrRestricted
			}
		}
	}
	st.changes = filterChanges(st.changes, func(c entity.InventoryChange) bool { return c.WarehouseID != id })
	for k := range st.inventory {
		if k.WarehouseID == id {
			delete(st.inventory, k)
		}
	}
	for k := range st.overrides {
		if k.WarehouseID == id {
			delete(st.overrides, k)
		}
	}
	delete(st.warehouses, id)
	return nil
}

// ProductRepo productos en memoria.
type ProductRepo struct{ acc access }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.acc(func(st *state) error {
		for _, other := range st.products {
			if other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		p.ID = st.nextID("products")
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.acc(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.acc(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	return r.acc(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.orders {
			for _, it := range o.Items {
				if it.ProductID == id {
					return domain.ErrRestricted
				}
			}
		}
		st.changes = filterChanges(st.changes, func(c entity.InventoryChange) bool { return c.ProductID != id })
		for k := range st.inventory {
			if k.ProductID == id {
				delete(st.inventory, k)
			}
		}
		delete(st.thresholds, id)
		for k := range st.overrides {
			if k.ProductID == id {
				delete(st.overrides, k)
			}
		}
		for k := range st.supplierProducts {
			if k.ProductID == id {
				delete(st.supplierProducts, k)
			}
		}
		for k := range st.bundles {
			if k.BundleID == id || k.ComponentID == id {
				delete(st.bundles, k)
			}
		}
		delete(st.products, id)
		return nil
	})
}

// BundleRepo componentes de kits en memoria.
type BundleRepo struct{ acc access }

func (r *BundleRepo) Upsert(_ context.Context, b *entity.ProductBundle) error {
	return r.acc(func(st *state) error {
		_, okB := st.products[b.BundleID]
		_, okC := st.products[b.ComponentProductID]
		if !okB || !okC {
			return domain.ErrNotFound
		}
		st.bundles[bundleKey{BundleID: b.BundleID, ComponentID: b.ComponentProductID}] = *b
		return nil
	})
}

func (r *BundleRepo) ListComponents(_ context.Context, bundleID int64) ([]*entity.ProductBundle, error) {
	var list []*entity.ProductBundle
	err := r.acc(func(st *state) error {
		for k, b := range st.bundles {
			if k.BundleID == bundleID {
				b := b
				list = append(list, &b)
			}
		}
		return nil
	})
	sortByID(list, func(b *entity.ProductBundle) int64 { return b.ComponentProductID })
	return list, err
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ acc access }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.acc(func(st *state) error {
		s.ID = st.nextID("suppliers")
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.acc(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) LinkProduct(_ context.Context, l *entity.SupplierProduct) error {
	return r.acc(func(st *state) error {
		_, okS := st.suppliers[l.SupplierID]
		_, okP := st.products[l.ProductID]
		if !okS || !okP {
			return domain.ErrNotFound
		}
		if l.CompanyID != nil {
			if _, ok := st.companies[*l.CompanyID]; !ok {
				return domain.ErrNotFound
			}
		}
		st.supplierProducts[supplierKey{SupplierID: l.SupplierID, ProductID: l.ProductID}] = *l
		return nil
	})
}

func (r *SupplierRepo) Delete(_ context.Context, id int64) error {
	return r.acc(func(st *state) error {
		if _, ok := st.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		for k := range st.supplierProducts {
			if k.SupplierID == id {
				delete(st.supplierProducts, k)
			}
		}
		delete(st.suppliers, id)
		return nil
	})
}

func filterChanges(in []entity.InventoryChange, keep func(entity.InventoryChange) bool) []entity.InventoryChange {
	out := in[:0:0]
	for _, c := range in {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func sortByID[T any](list []T, id func(T) int64) {
	sort.Slice(list, func(i, j int) bool { return id(list[i]) < id(list[j]) })
}
