package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
)

type countingCache struct {
	companies []int64
	all       int
}

func (c *countingCache) Get(context.Context, int64, int) (*dto.LowStockAlertsResponse, string, bool) {
	return nil, "", false
}
func (c *countingCache) Set(context.Context, string, *dto.LowStockAlertsResponse) {}
func (c *countingCache) InvalidateCompany(_ context.Context, id int64) {
	c.companies = append(c.companies, id)
}
func (c *countingCache) InvalidateAll(context.Context) { c.all++ }

type catalog struct {
	store      *memory.Store
	repos      repository.Repos
	cache      *countingCache
	companies  *CompanyUseCase
	warehouses *WarehouseUseCase
	products   *ProductUseCase
	suppliers  *SupplierUseCase
	thresholds *ThresholdUseCase
}

func newCatalog() catalog {
	store := memory.NewStore()
	repos := store.Repos()
	cache := &countingCache{}
	return catalog{
		store:      store,
		repos:      repos,
		cache:      cache,
		companies:  NewCompanyUseCase(repos.Companies, store, cache),
		warehouses: NewWarehouseUseCase(repos.Warehouses, repos.Companies, store, cache),
		products:   NewProductUseCase(repos.Products, store, cache),
		suppliers:  NewSupplierUseCase(repos.Suppliers, repos.Products, store, cache),
		thresholds: NewThresholdUseCase(repos.Thresholds, repos.Products, repos.Warehouses, cache),
	}
}

func (c catalog) product(t *testing.T, sku string) *entity.Product {
	t.Helper()
	p := &entity.Product{SKU: sku, Name: sku, Price: decimal.RequireFromString("12.5"), ProductType: entity.ProductTypeStandard, Active: true}
	require.NoError(t, c.repos.Products.Create(context.Background(), p))
	return p
}

func TestCompany_CrearYDuplicado(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	resp, err := c.companies.Create(ctx, dto.CreateCompanyRequest{Name: " Acme "})
	require.NoError(t, err)
	assert.Equal(t, "Acme", resp.Name)

	_, err = c.companies.Create(ctx, dto.CreateCompanyRequest{Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = c.companies.Create(ctx, dto.CreateCompanyRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.companies.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouse_NombreUnicoPorEmpresa(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()
	a, err := c.companies.Create(ctx, dto.CreateCompanyRequest{Name: "A"})
	require.NoError(t, err)
	b, err := c.companies.Create(ctx, dto.CreateCompanyRequest{Name: "B"})
	require.NoError(t, err)

	_, err = c.warehouses.Create(ctx, a.ID, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)
	_, err = c.warehouses.Create(ctx, a.ID, dto.CreateWarehouseRequest{Name: "Central"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = c.warehouses.Create(ctx, b.ID, dto.CreateWarehouseRequest{Name: "Central"})
	assert.NoError(t, err)
	_, err = c.warehouses.Create(ctx, 999, dto.CreateWarehouseRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := c.warehouses.ListByCompany(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, []int64{a.ID, b.ID}, c.cache.companies)
}

func TestWarehouse_BorradoRestringidoPorVentas(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()
	co, err := c.companies.Create(ctx, dto.CreateCompanyRequest{Name: "A"})
	require.NoError(t, err)
	w, err := c.warehouses.Create(ctx, co.ID, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)
	p := c.product(t, "W-1")
	require.NoError(t, c.repos.Sales.Create(ctx, &entity.SalesOrder{
		CompanyID: co.ID, OrderedAt: time.Now().UTC(),
		Items: []entity.SalesOrderItem{{ProductID: p.ID, WarehouseID: w.ID, Quantity: 1}},
	}))

	assert.ErrorIs(t, c.warehouses.Delete(ctx, w.ID), domain.ErrRestricted)
	assert.ErrorIs(t, c.products.Delete(ctx, p.ID), domain.ErrRestricted)
	assert.ErrorIs(t, c.warehouses.Delete(ctx, 999), domain.ErrNotFound)

	// la empresa se lleva sus órdenes, y entonces la bodega ya no está restringida
	require.NoError(t, c.companies.Delete(ctx, co.ID))
	_, err = c.warehouses.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, c.products.Delete(ctx, p.ID))
}

func TestProduct_ActualizarPrecioYActivo(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()
	p := c.product(t, "W-1")
	inactive := false

	resp, err := c.products.Update(ctx, p.ID, dto.UpdateProductRequest{Price: json.RawMessage(`"7.456"`), Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "7.46", resp.Price)
	assert.False(t, resp.Active)
	assert.Equal(t, 1, c.cache.all)

	got, err := c.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "7.46", got.Price)

	_, err = c.products.Update(ctx, p.ID, dto.UpdateProductRequest{Price: json.RawMessage(`null`)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.products.Update(ctx, 999, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplier_VinculoConLeadTimePorDefecto(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()
	p := c.product(t, "W-1")
	blank := " "

	s, err := c.suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Prov", ContactEmail: &blank})
	require.NoError(t, err)
	assert.Nil(t, s.ContactEmail)

	link, err := c.suppliers.LinkProduct(ctx, s.ID, p.ID, dto.LinkSupplierProductRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultLeadTimeDays, link.LeadTimeDays)

	link, err = c.suppliers.LinkProduct(ctx, s.ID, p.ID, dto.LinkSupplierProductRequest{LeadTimeDays: json.RawMessage(`3`)})
	require.NoError(t, err)
	assert.Equal(t, 3, link.LeadTimeDays)

	_, err = c.suppliers.LinkProduct(ctx, s.ID, p.ID, dto.LinkSupplierProductRequest{LeadTimeDays: json.RawMessage(`-1`)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.suppliers.LinkProduct(ctx, s.ID+1, p.ID, dto.LinkSupplierProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, c.suppliers.Delete(ctx, s.ID))
	assert.ErrorIs(t, c.suppliers.Delete(ctx, s.ID), domain.ErrNotFound)
}

func TestThreshold_DefaultYOverride(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()
	co, err := c.companies.Create(ctx, dto.CreateCompanyRequest{Name: "A"})
	require.NoError(t, err)
	w, err := c.warehouses.Create(ctx, co.ID, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)
	p := c.product(t, "W-1")

	resp, err := c.thresholds.SetDefault(ctx, p.ID, dto.ThresholdRequest{Threshold: json.RawMessage(`20`)})
	require.NoError(t, err)
	assert.Equal(t, int64(20), resp.Threshold)
	assert.Nil(t, resp.WarehouseID)

	resp, err = c.thresholds.SetOverride(ctx, p.ID, w.ID, dto.ThresholdRequest{Threshold: json.RawMessage(`"5"`)})
	require.NoError(t, err)
	require.NotNil(t, resp.WarehouseID)
	assert.Equal(t, w.ID, *resp.WarehouseID)

	_, err = c.thresholds.SetDefault(ctx, p.ID, dto.ThresholdRequest{Threshold: json.RawMessage(`-2`)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.thresholds.SetDefault(ctx, p.ID, dto.ThresholdRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.thresholds.SetOverride(ctx, p.ID, 999, dto.ThresholdRequest{Threshold: json.RawMessage(`1`)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, c.thresholds.DeleteOverride(ctx, p.ID, w.ID))
	assert.ErrorIs(t, c.thresholds.DeleteOverride(ctx, p.ID, w.ID), domain.ErrNotFound)
	assert.Equal(t, 3, c.cache.all)
}
