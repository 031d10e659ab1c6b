package postgres

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/alert"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/migrations"
)

// testPool abre un pool sobre un schema propio del test. Requiere TEST_DATABASE_URL.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	schema := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		_ = admin.Close(context.Background())
	})

	applied, err := Migrate(ctx, pool, migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, applied)
	return pool
}

func seedBasics(t *testing.T, repos repository.Repos) (*entity.Company, *entity.Warehouse, *entity.Product) {
	t.Helper()
	ctx := context.Background()
	c := &entity.Company{Name: "Acme"}
	require.NoError(t, repos.Companies.Create(ctx, c))
	w := &entity.Warehouse{CompanyID: c.ID, Name: "Central"}
	require.NoError(t, repos.Warehouses.Create(ctx, w))
	p := &entity.Product{SKU: "W-1", Name: "Widget", Price: decimal.RequireFromString("10.50"), ProductType: entity.ProductTypeStandard, Active: true}
	require.NoError(t, repos.Products.Create(ctx, p))
	return c, w, p
}

func TestPostgres_MigrateIdempotente(t *testing.T) {
	pool := testPool(t)
	applied, err := Migrate(context.Background(), pool, migrations.FS)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestPostgres_ProductoYDuplicado(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repos := NewRepos(pool)
	_, _, p := seedBasics(t, repos)

	got, err := repos.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "10.5", got.Price.String())

	err = repos.Products.Create(ctx, &entity.Product{SKU: "W-1", Name: "Otro", Price: decimal.Zero, ProductType: entity.ProductTypeStandard})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	missing, err := repos.Products.GetByID(ctx, p.ID+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostgres_AddQuantityConcurrenteNoPierdeIncrementos(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	_, w, p := seedBasics(t, NewRepos(pool))
	runner := NewTxRunner(pool)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.Run(ctx, func(r repository.Repos) error {
				if _, err := r.Inventory.GetForUpdate(ctx, p.ID, w.ID); err != nil {
					return err
				}
				_, err := r.Inventory.AddQuantity(ctx, p.ID, w.ID, 5)
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	inv, err := NewInventoryRepository(pool).Get(ctx, p.ID, w.ID)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, int64(100), inv.Quantity)

	_, err = NewInventoryRepository(pool).AddQuantity(ctx, p.ID, w.ID, -101)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestPostgres_RollbackDescartaTodo(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	_, w, _ := seedBasics(t, NewRepos(pool))

	err := NewTxRunner(pool).Run(ctx, func(r repository.Repos) error {
		p := &entity.Product{SKU: "NEW", Name: "Nuevo", Price: decimal.Zero, ProductType: entity.ProductTypeStandard, Active: true}
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		if _, err := r.Inventory.AddQuantity(ctx, p.ID, w.ID, 3); err != nil {
			return err
		}
		return fmt.Errorf("forzar rollback")
	})
	require.Error(t, err)

	var n int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM products WHERE sku = 'NEW'").Scan(&n))
	assert.Zero(t, n)
}

func TestPostgres_BorradoRestringidoYCascada(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	runner := NewTxRunner(pool)
	c, w, p := seedBasics(t, NewRepos(pool))

	require.NoError(t, runner.Run(ctx, func(r repository.Repos) error {
		if _, err := r.Inventory.AddQuantity(ctx, p.ID, w.ID, 10); err != nil {
			return err
		}
		return r.Sales.Create(ctx, &entity.SalesOrder{
			CompanyID: c.ID,
			OrderedAt: time.Now().UTC(),
			Items:     []entity.SalesOrderItem{{ProductID: p.ID, WarehouseID: w.ID, Quantity: 2}},
		})
	}))

	err := runner.Run(ctx, func(r repository.Repos) error { return r.Products.Delete(ctx, p.ID) })
	assert.ErrorIs(t, err, domain.ErrRestricted)

	require.NoError(t, runner.Run(ctx, func(r repository.Repos) error { return r.Companies.Delete(ctx, c.ID) }))
	got, err := NewWarehouseRepository(pool).GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// sin ventas que lo referencien, el producto ya se puede borrar
	require.NoError(t, runner.Run(ctx, func(r repository.Repos) error { return r.Products.Delete(ctx, p.ID) }))
}

func TestPostgres_LoadSnapshot(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repos := NewRepos(pool)
	c, w, p := seedBasics(t, repos)
	now := time.Now().UTC()

	_, err := repos.Inventory.AddQuantity(ctx, p.ID, w.ID, 10)
	require.NoError(t, err)
	require.NoError(t, repos.Thresholds.SetDefault(ctx, &entity.ProductThreshold{ProductID: p.ID, Threshold: 20}))
	require.NoError(t, repos.Thresholds.SetOverride(ctx, &entity.ProductThresholdOverride{ProductID: p.ID, WarehouseID: w.ID, Threshold: 15}))
	email := "compras@proveedor.co"
	s := &entity.Supplier{Name: "Proveedor", ContactEmail: &email}
	require.NoError(t, repos.Suppliers.Create(ctx, s))
	require.NoError(t, repos.Suppliers.LinkProduct(ctx, &entity.SupplierProduct{SupplierID: s.ID, ProductID: p.ID, LeadTimeDays: 4}))
	require.NoError(t, repos.Sales.Create(ctx, &entity.SalesOrder{
		CompanyID: c.ID, OrderedAt: now.AddDate(0, 0, -1),
		Items: []entity.SalesOrderItem{{ProductID: p.ID, WarehouseID: w.ID, Quantity: 30}},
	}))
	require.NoError(t, repos.Sales.Create(ctx, &entity.SalesOrder{
		CompanyID: c.ID, OrderedAt: now.AddDate(0, 0, -45),
		Items: []entity.SalesOrderItem{{ProductID: p.ID, WarehouseID: w.ID, Quantity: 500}},
	}))

	window := alert.NewWindow(30, now)
	snap, err := NewAlertSourceRepository(pool).LoadSnapshot(ctx, c.ID, window)
	require.NoError(t, err)
	require.Len(t, snap.Sales, 1)
	assert.Equal(t, int64(20), snap.Defaults[p.ID])
	assert.Equal(t, int64(15), snap.Overrides[alert.Key{ProductID: p.ID, WarehouseID: w.ID}])

	alerts := alert.Compute(snap, window)
	require.Len(t, alerts, 1)
	assert.Equal(t, int64(15), alerts[0].Threshold)
	require.NotNil(t, alerts[0].DaysUntilStockout)
	assert.Equal(t, int64(10), *alerts[0].DaysUntilStockout)
	require.NotNil(t, alerts[0].Supplier)
	assert.Equal(t, s.ID, alerts[0].Supplier.ID)
}
