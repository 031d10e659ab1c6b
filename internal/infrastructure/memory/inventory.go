package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/alert"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var (
	_ repository.InventoryRepository       = (*InventoryRepo)(nil)
	_ repository.InventoryChangeRepository = (*InventoryChangeRepo)(nil)
	_ repository.SalesOrderRepository      = (*SalesOrderRepo)(nil)
	_ repository.ThresholdRepository       = (*ThresholdRepo)(nil)
)

// InventoryRepo stock por (producto, bodega) en memoria.
type InventoryRepo struct{ acc access }

func (r *InventoryRepo) Get(_ context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	var out *entity.Inventory
	err := r.acc(func(st *state) error {
		if inv, ok := st.inventory[alert.Key{ProductID: productID, WarehouseID: warehouseID}]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a Get: el mutex del Store ya serializa las transacciones.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (r *InventoryRepo) AddQuantity(_ context.Context, productID, warehouseID, delta int64) (*entity.Inventory, error) {
	var out *entity.Inventory
	err := r.acc(func(st *state) error {
		if err := requirePair(st, productID, warehouseID); err != nil {
			return err
		}
		key := alert.Key{ProductID: productID, WarehouseID: warehouseID}
		inv, ok := st.inventory[key]
		if !ok {
			inv = entity.Inventory{ProductID: productID, WarehouseID: warehouseID}
		}
		if inv.Quantity+delta < 0 {
			return domain.ErrInsufficientStock
		}
		inv.Quantity += delta
		st.inventory[key] = inv
		out = &inv
		return nil
	})
	return out, err
}

// InventoryChangeRepo ledger en memoria.
type InventoryChangeRepo struct{ acc access }

func (r *InventoryChangeRepo) Append(_ context.Context, c *entity.InventoryChange) error {
	return r.acc(func(st *state) error {
		if err := requirePair(st, c.ProductID, c.WarehouseID); err != nil {
			return err
		}
		c.ID = st.nextID("inventory_changes")
		st.changes = append(st.changes, *c)
		return nil
	})
}

func (r *InventoryChangeRepo) List(_ context.Context, f repository.InventoryChangeFilter) ([]*entity.InventoryChange, error) {
	var list []*entity.InventoryChange
	err := r.acc(func(st *state) error {
		for _, c := range st.changes {
			if f.ProductID != nil && c.ProductID != *f.ProductID {
				continue
			}
			if f.WarehouseID != nil && c.WarehouseID != *f.WarehouseID {
				continue
			}
			if f.From != nil && c.ChangedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && c.ChangedAt.After(*f.To) {
				continue
			}
			c := c
			list = append(list, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].ChangedAt.Equal(list[j].ChangedAt) {
			return list[i].ChangedAt.After(list[j].ChangedAt)
		}
		return list[i].ID > list[j].ID
	})
	if f.Offset >= len(list) {
		return []*entity.InventoryChange{}, nil
	}
	list = list[f.Offset:]
	if f.Limit > 0 && f.Limit < len(list) {
		list = list[:f.Limit]
	}
	return list, nil
}

// SalesOrderRepo órdenes de venta en memoria.
type SalesOrderRepo struct{ acc access }

func (r *SalesOrderRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	return r.acc(func(st *state) error {
		if _, ok := st.companies[o.CompanyID]; !ok {
			return domain.ErrNotFound
		}
		seen := make(map[alert.Key]bool, len(o.Items))
		for _, it := range o.Items {
			if err := requirePair(st, it.ProductID, it.WarehouseID); err != nil {
				return err
			}
			k := alert.Key{ProductID: it.ProductID, WarehouseID: it.WarehouseID}
			if seen[k] {
				return domain.ErrDuplicate
			}
			seen[k] = true
		}
		o.ID = st.nextID("sales_orders")
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
		}
		stored := *o
		stored.Items = append([]entity.SalesOrderItem(nil), o.Items...)
		st.orders[o.ID] = stored
		return nil
	})
}

// ThresholdRepo umbrales en memoria.
type ThresholdRepo struct{ acc access }

func (r *ThresholdRepo) SetDefault(_ context.Context, t *entity.ProductThreshold) error {
	return r.acc(func(st *state) error {
		if _, ok := st.products[t.ProductID]; !ok {
			return domain.ErrNotFound
		}
		st.thresholds[t.ProductID] = t.Threshold
		return nil
	})
}

func (r *ThresholdRepo) SetOverride(_ context.Context, t *entity.ProductThresholdOverride) error {
	return r.acc(func(st *state) error {
		if err := requirePair(st, t.ProductID, t.WarehouseID); err != nil {
			return err
		}
		st.overrides[alert.Key{ProductID: t.ProductID, WarehouseID: t.WarehouseID}] = t.Threshold
		return nil
	})
}

func (r *ThresholdRepo) DeleteOverride(_ context.Context, productID, warehouseID int64) (bool, error) {
	var existed bool
	err := r.acc(func(st *state) error {
		k := alert.Key{ProductID: productID, WarehouseID: warehouseID}
		_, existed = st.overrides[k]
		delete(st.overrides, k)
		return nil
	})
	return existed, err
}

// requirePair emula las FK hacia products y warehouses.
func requirePair(st *state, productID, warehouseID int64) error {
	if _, ok := st.products[productID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := st.warehouses[warehouseID]; !ok {
		return domain.ErrNotFound
	}
	return nil
}
