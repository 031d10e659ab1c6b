package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/alert"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

type fixture struct {
	store     *Store
	company   *entity.Company
	warehouse *entity.Warehouse
	product   *entity.Product
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	s := NewStore()
	r := s.Repos()

	c := &entity.Company{Name: "Acme"}
	require.NoError(t, r.Companies.Create(ctx, c))
	w := &entity.Warehouse{CompanyID: c.ID, Name: "Central"}
	require.NoError(t, r.Warehouses.Create(ctx, w))
	p := &entity.Product{SKU: "W-1", Name: "Widget", Price: decimal.RequireFromString("9.99"), Active: true}
	require.NoError(t, r.Products.Create(ctx, p))
	return fixture{store: s, company: c, warehouse: w, product: p}
}

func TestRun_ErrorDescartaTodosLosCambios(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := f.store.Run(ctx, func(r repository.Repos) error {
		if _, err := r.Inventory.AddQuantity(ctx, f.product.ID, f.warehouse.ID, 10); err != nil {
			return err
		}
		require.NoError(t, r.Products.Create(ctx, &entity.Product{SKU: "W-2", Name: "Otro"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	inv, err := f.store.Repos().Inventory.Get(ctx, f.product.ID, f.warehouse.ID)
	require.NoError(t, err)
	assert.Nil(t, inv)
	assert.Len(t, f.store.st.products, 1)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	f := newFixture(t)
	err := f.store.Repos().Products.Create(context.Background(), &entity.Product{SKU: "W-1", Name: "Copia"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAddQuantity_NuncaNegativo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.store.Repos().Inventory

	got, err := inv.AddQuantity(ctx, f.product.ID, f.warehouse.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)

	_, err = inv.AddQuantity(ctx, f.product.ID, f.warehouse.ID, -6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err = inv.Get(ctx, f.product.ID, f.warehouse.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)

	_, err = inv.AddQuantity(ctx, f.product.ID, 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDelete_RestringidoPorVentas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.store.Repos()
	_, err := r.Inventory.AddQuantity(ctx, f.product.ID, f.warehouse.ID, 5)
	require.NoError(t, err)
	require.NoError(t, r.Sales.Create(ctx, &entity.SalesOrder{
		CompanyID: f.company.ID,
		OrderedAt: time.Now().UTC(),
		Items:     []entity.SalesOrderItem{{ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 1}},
	}))

	assert.ErrorIs(t, r.Products.Delete(ctx, f.product.ID), domain.ErrRestricted)
	assert.ErrorIs(t, r.Warehouses.Delete(ctx, f.warehouse.ID), domain.ErrRestricted)

	p, err := r.Products.GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestCompanyDelete_Cascada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.store.Repos()
	_, err := r.Inventory.AddQuantity(ctx, f.product.ID, f.warehouse.ID, 5)
	require.NoError(t, err)
	require.NoError(t, r.Changes.Append(ctx, &entity.InventoryChange{
		ProductID: f.product.ID, WarehouseID: f.warehouse.ID, QuantityDelta: 5,
		Reason: entity.ChangeReasonInitialStock, ChangedAt: time.Now().UTC(),
	}))
	require.NoError(t, r.Thresholds.SetOverride(ctx, &entity.ProductThresholdOverride{
		ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Threshold: 3,
	}))
	require.NoError(t, r.Sales.Create(ctx, &entity.SalesOrder{
		CompanyID: f.company.ID,
		OrderedAt: time.Now().UTC(),
		Items:     []entity.SalesOrderItem{{ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 1}},
	}))

	require.NoError(t, r.Companies.Delete(ctx, f.company.ID))

	w, err := r.Warehouses.GetByID(ctx, f.warehouse.ID)
	require.NoError(t, err)
	assert.Nil(t, w)
	changes, err := r.Changes.List(ctx, repository.InventoryChangeFilter{})
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Empty(t, f.store.st.overrides)
	assert.Empty(t, f.store.st.orders)
	// el producto no pertenece a la empresa
	p, err := r.Products.GetByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestChangesList_MasRecientePrimeroYPaginado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.store.Repos()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Changes.Append(ctx, &entity.InventoryChange{
			ProductID: f.product.ID, WarehouseID: f.warehouse.ID, QuantityDelta: int64(i + 1),
			Reason: entity.ChangeReasonAdjustment, ChangedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	list, err := r.Changes.List(ctx, repository.InventoryChangeFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(4), list[0].QuantityDelta)
	assert.Equal(t, int64(3), list[1].QuantityDelta)
}

func TestLoadSnapshot_SoloLaEmpresaYLaVentana(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.store.Repos()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	other := &entity.Company{Name: "Otra"}
	require.NoError(t, r.Companies.Create(ctx, other))
	ow := &entity.Warehouse{CompanyID: other.ID, Name: "Norte"}
	require.NoError(t, r.Warehouses.Create(ctx, ow))

	for _, wid := range []int64{f.warehouse.ID, ow.ID} {
		_, err := r.Inventory.AddQuantity(ctx, f.product.ID, wid, 10)
		require.NoError(t, err)
	}
	require.NoError(t, r.Thresholds.SetDefault(ctx, &entity.ProductThreshold{ProductID: f.product.ID, Threshold: 20}))
	require.NoError(t, r.Sales.Create(ctx, &entity.SalesOrder{
		CompanyID: f.company.ID, OrderedAt: now.AddDate(0, 0, -2),
		Items: []entity.SalesOrderItem{{ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 4}},
	}))
	require.NoError(t, r.Sales.Create(ctx, &entity.SalesOrder{
		CompanyID: f.company.ID, OrderedAt: now.AddDate(0, 0, -60),
		Items: []entity.SalesOrderItem{{ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 99}},
	}))
	require.NoError(t, r.Sales.Create(ctx, &entity.SalesOrder{
		CompanyID: other.ID, OrderedAt: now.AddDate(0, 0, -1),
		Items: []entity.SalesOrderItem{{ProductID: f.product.ID, WarehouseID: ow.ID, Quantity: 7}},
	}))

	snap, err := f.store.LoadSnapshot(ctx, f.company.ID, alert.NewWindow(30, now))
	require.NoError(t, err)
	require.Len(t, snap.Warehouses, 1)
	require.Len(t, snap.Stock, 1)
	require.Len(t, snap.Sales, 1)
	assert.Equal(t, int64(4), snap.Sales[0].Quantity)
	assert.Equal(t, int64(20), snap.Defaults[f.product.ID])
}

func TestBundles_UpsertListYCascada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.store.Repos()

	kit := &entity.Product{SKU: "KIT-1", Name: "Kit", Price: decimal.RequireFromString("20"), Active: true}
	require.NoError(t, r.Products.Create(ctx, kit))

	require.NoError(t, r.Bundles.Upsert(ctx, &entity.ProductBundle{BundleID: kit.ID, ComponentProductID: f.product.ID, Quantity: 2}))
	require.NoError(t, r.Bundles.Upsert(ctx, &entity.ProductBundle{BundleID: kit.ID, ComponentProductID: f.product.ID, Quantity: 3}))
	err := r.Bundles.Upsert(ctx, &entity.ProductBundle{BundleID: kit.ID, ComponentProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	comps, err := r.Bundles.ListComponents(ctx, kit.ID)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, int64(3), comps[0].Quantity)

	// borrar el componente elimina la fila del kit
	require.NoError(t, r.Products.Delete(ctx, f.product.ID))
	comps, err = r.Bundles.ListComponents(ctx, kit.ID)
	require.NoError(t, err)
	assert.Empty(t, comps)
}
