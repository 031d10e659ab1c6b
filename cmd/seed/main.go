// seed carga datos de demostración: una empresa con dos bodegas, productos con stock,
// umbrales, proveedores, un kit y ventas de las últimas semanas que disparan alertas.
//
// Uso: go run ./cmd/seed
// Se apoya en los mismos casos de uso que la API, así el ledger queda consistente.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

type seedProduct struct {
	sku, name, price string
	qty              [2]int64 // por bodega
	threshold        int64
	dailySales       int64
}

var catalog = []seedProduct{
	{"CAF-500", "Café molido 500 g", "18500", [2]int64{40, 12}, 30, 3},
	{"AZU-1K", "Azúcar 1 kg", "4200", [2]int64{200, 150}, 50, 4},
	{"LEC-1L", "Leche entera 1 L", "3900", [2]int64{25, 8}, 60, 6},
	{"ACE-900", "Aceite vegetal 900 ml", "12900", [2]int64{15, 30}, 20, 1},
	{"ARR-5K", "Arroz 5 kg", "21000", [2]int64{90, 5}, 25, 2},
	{"KIT-DES", "Kit desayuno", "32000", [2]int64{0, 0}, 0, 0},
}

func raw(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "leer .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repos := postgres.NewRepos(pool)
	tx := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(repos.Companies, tx, nil)
	warehouseUC := usecase.NewWarehouseUseCase(repos.Warehouses, repos.Companies, tx, nil)
	supplierUC := usecase.NewSupplierUseCase(repos.Suppliers, repos.Products, tx, nil)
	thresholdUC := usecase.NewThresholdUseCase(repos.Thresholds, repos.Products, repos.Warehouses, nil)
	createProduct := inventory.NewCreateProductUseCase(tx, repos.Warehouses, nil)
	adjust := inventory.NewAdjustStockUseCase(tx, repos.Products, repos.Warehouses, nil)
	recordSale := inventory.NewRecordSaleUseCase(tx, repos.Companies, repos.Products, repos.Warehouses, nil)

	company, err := companyUC.Create(ctx, dto.CreateCompanyRequest{Name: "Demo Retail"})
	if errors.Is(err, domain.ErrDuplicate) {
		log.Info().Msg("datos de demostración ya cargados")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("crear empresa")
	}

	var warehouses [2]*dto.WarehouseResponse
	for i, name := range []string{"Bodega Norte", "Bodega Sur"} {
		w, err := warehouseUC.Create(ctx, company.ID, dto.CreateWarehouseRequest{Name: name, Address: fmt.Sprintf("Calle %d # 10-20", 10*(i+1))})
		if err != nil {
			log.Fatal().Err(err).Str("warehouse", name).Msg("crear bodega")
		}
		warehouses[i] = w
	}

	email := "pedidos@distribuidora.co"
	fast, err := supplierUC.Create(ctx, dto.CreateSupplierRequest{Name: "Distribuidora Express", ContactEmail: &email})
	if err != nil {
		log.Fatal().Err(err).Msg("crear proveedor")
	}
	slow, err := supplierUC.Create(ctx, dto.CreateSupplierRequest{Name: "Mayorista Central"})
	if err != nil {
		log.Fatal().Err(err).Msg("crear proveedor")
	}

	productIDs := make(map[string]int64, len(catalog))
	for _, p := range catalog {
		created, err := createProduct.Execute(ctx, dto.CreateProductRequest{
			Name:            p.name,
			SKU:             p.sku,
			Price:           raw(p.price),
			WarehouseID:     raw(warehouses[0].ID),
			InitialQuantity: raw(p.qty[0]),
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", p.sku).Msg("crear producto")
		}
		id := created.Product.ID
		productIDs[p.sku] = id

		if p.qty[1] > 0 {
			if _, err := adjust.Execute(ctx, dto.AdjustStockRequest{
				ProductID:   raw(id),
				WarehouseID: raw(warehouses[1].ID),
				Delta:       raw(p.qty[1]),
				Reason:      "restock",
				RefType:     "seed",
			}); err != nil {
				log.Fatal().Err(err).Str("sku", p.sku).Msg("stock bodega sur")
			}
		}
		if p.threshold > 0 {
			if _, err := thresholdUC.SetDefault(ctx, id, dto.ThresholdRequest{Threshold: raw(p.threshold)}); err != nil {
				log.Fatal().Err(err).Str("sku", p.sku).Msg("umbral")
			}
		}
		if _, err := supplierUC.LinkProduct(ctx, slow.ID, id, dto.LinkSupplierProductRequest{LeadTimeDays: raw(10)}); err != nil {
			log.Fatal().Err(err).Str("sku", p.sku).Msg("vincular proveedor")
		}
	}

	// La leche tiene un proveedor más rápido y un umbral propio en la bodega sur.
	if _, err := supplierUC.LinkProduct(ctx, fast.ID, productIDs["LEC-1L"], dto.LinkSupplierProductRequest{LeadTimeDays: raw(2)}); err != nil {
		log.Fatal().Err(err).Msg("vincular proveedor rápido")
	}
	if _, err := thresholdUC.SetOverride(ctx, productIDs["LEC-1L"], warehouses[1].ID, dto.ThresholdRequest{Threshold: raw(20)}); err != nil {
		log.Fatal().Err(err).Msg("umbral bodega sur")
	}

	// Kit: café + azúcar + leche
	kitID := productIDs["KIT-DES"]
	err = tx.Run(ctx, func(r repository.Repos) error {
		for sku, qty := range map[string]int64{"CAF-500": 1, "AZU-1K": 1, "LEC-1L": 2} {
			if err := r.Bundles.Upsert(ctx, &entity.ProductBundle{BundleID: kitID, ComponentProductID: productIDs[sku], Quantity: qty}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("kit")
	}

	// Una venta por día durante las últimas dos semanas, alternando bodegas.
	now := time.Now().UTC()
	orders := 0
	for day := 14; day >= 1; day-- {
		orderedAt := now.AddDate(0, 0, -day)
		w := warehouses[day%2]
		var items []dto.SalesOrderItemRequest
		for _, p := range catalog {
			if p.dailySales == 0 {
				continue
			}
			items = append(items, dto.SalesOrderItemRequest{ProductID: productIDs[p.sku], WarehouseID: w.ID, Quantity: p.dailySales})
		}
		if _, err := recordSale.Execute(ctx, company.ID, dto.CreateSalesOrderRequest{OrderedAt: &orderedAt, Items: items}); err != nil {
			// sin stock suficiente en esa bodega: se omite el día
			if errors.Is(err, domain.ErrInsufficientStock) {
				log.Warn().Int("days_ago", day).Str("warehouse", w.Name).Msg("venta omitida por stock")
				continue
			}
			log.Fatal().Err(err).Int("days_ago", day).Msg("registrar venta")
		}
		orders++
	}

	log.Info().
		Int64("company_id", company.ID).
		Int("products", len(catalog)).
		Int("sales_orders", orders).
		Msg("datos de demostración cargados")
}
