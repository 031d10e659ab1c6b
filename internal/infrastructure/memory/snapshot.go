package memory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/alert"
)

// LoadSnapshot copia bajo el mutex los insumos de alertas de la empresa.
func (s *Store) LoadSnapshot(ctx context.Context, companyID int64, window alert.Window) (*alert.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := &alert.Snapshot{
		CompanyID: companyID,
		Products:  make(map[int64]alert.ProductInfo),
		Defaults:  make(map[int64]int64),
		Overrides: make(map[alert.Key]int64),
	}
	s.read(func(st *state) {
		scoped := make(map[int64]bool)
		for _, w := range st.warehouses {
			if w.CompanyID == companyID {
				scoped[w.ID] = true
				snap.Warehouses = append(snap.Warehouses, alert.WarehouseInfo{ID: w.ID, Name: w.Name})
			}
		}
		referenced := make(map[int64]bool)
		for k, inv := range st.inventory {
			if !scoped[k.WarehouseID] {
				continue
			}
			referenced[k.ProductID] = true
			snap.Stock = append(snap.Stock, alert.StockRow{ProductID: k.ProductID, WarehouseID: k.WarehouseID, Quantity: inv.Quantity})
		}
		for _, o := range st.orders {
			if o.CompanyID != companyID || !window.Contains(o.OrderedAt) {
				continue
			}
			for _, it := range o.Items {
				snap.Sales = append(snap.Sales, alert.SaleLine{
					ProductID:   it.ProductID,
					WarehouseID: it.WarehouseID,
					Quantity:    it.Quantity,
					OrderedAt:   o.OrderedAt,
				})
			}
		}
		for pid := range referenced {
			p := st.products[pid]
			snap.Products[pid] = alert.ProductInfo{ID: p.ID, Name: p.Name, SKU: p.SKU}
			if t, ok := st.thresholds[pid]; ok {
				snap.Defaults[pid] = t
			}
		}
		for k, t := range st.overrides {
			if scoped[k.WarehouseID] {
				snap.Overrides[k] = t
			}
		}
		for k, l := range st.supplierProducts {
			if !referenced[k.ProductID] {
				continue
			}
			sup := st.suppliers[k.SupplierID]
			snap.Suppliers = append(snap.Suppliers, alert.SupplierOption{
				ProductID:    k.ProductID,
				SupplierID:   sup.ID,
				Name:         sup.Name,
				ContactEmail: sup.ContactEmail,
				LeadTimeDays: l.LeadTimeDays,
			})
		}
	})
	return snap, nil
}
