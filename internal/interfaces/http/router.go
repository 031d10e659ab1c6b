package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// AppOptions parámetros del servidor Fiber.
type AppOptions struct {
	Name        string
	RateLimiter *RateLimiter // nil o desactivado = sin límite
}

// NewApp crea la app Fiber con timeouts, manejador de errores JSON, recover,
// log de peticiones y limitador por IP.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler,
	})
	app.Use(RequestLogger())
	app.Use(recover.New())
	app.Use(opts.RateLimiter.Handler())
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName   string
	CompanyUC     *usecase.CompanyUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	ProductUC     *usecase.ProductUseCase
	SupplierUC    *usecase.SupplierUseCase
	ThresholdUC   *usecase.ThresholdUseCase
	CreateProduct *inventory.CreateProductUseCase
	AdjustStock   *inventory.AdjustStockUseCase
	RecordSale    *inventory.RecordSaleUseCase
	ListChanges   *inventory.ListInventoryChangesUseCase
	LowStock      *inventory.LowStockAlertUseCase
}

// Backend puertos de persistencia y servicios de soporte con los que se arman los casos de uso.
type Backend struct {
	Repos       repository.Repos // fuera de transacción (auto-commit)
	Tx          repository.TxRunner
	AlertSource repository.AlertSourceRepository
	Cache       ports.AlertCache              // opcional
	Report      ports.LowStockReportGenerator // opcional; sin él el reporte PDF falla
	DefaultDays int
}

// NewRouterDeps construye todos los casos de uso sobre el backend.
func NewRouterDeps(serviceName string, b Backend) RouterDeps {
	r := b.Repos
	return RouterDeps{
		ServiceName:   serviceName,
		CompanyUC:     usecase.NewCompanyUseCase(r.Companies, b.Tx, b.Cache),
		WarehouseUC:   usecase.NewWarehouseUseCase(r.Warehouses, r.Companies, b.Tx, b.Cache),
		ProductUC:     usecase.NewProductUseCase(r.Products, b.Tx, b.Cache),
		SupplierUC:    usecase.NewSupplierUseCase(r.Suppliers, r.Products, b.Tx, b.Cache),
		ThresholdUC:   usecase.NewThresholdUseCase(r.Thresholds, r.Products, r.Warehouses, b.Cache),
		CreateProduct: inventory.NewCreateProductUseCase(b.Tx, r.Warehouses, b.Cache),
		AdjustStock:   inventory.NewAdjustStockUseCase(b.Tx, r.Products, r.Warehouses, b.Cache),
		RecordSale:    inventory.NewRecordSaleUseCase(b.Tx, r.Companies, r.Products, r.Warehouses, b.Cache),
		ListChanges:   inventory.NewListInventoryChangesUseCase(r.Changes),
		LowStock:      inventory.NewLowStockAlertUseCase(r.Companies, b.AlertSource, b.Cache, b.Report, b.DefaultDays),
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Products
	productHandler := NewProductHandler(deps.CreateProduct, deps.ProductUC)
	thresholdHandler := NewThresholdHandler(deps.ThresholdUC)
	products := api.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Put("/:id/threshold", thresholdHandler.SetDefault)
	products.Put("/:id/warehouses/:warehouse_id/threshold", thresholdHandler.SetOverride)
	products.Delete("/:id/warehouses/:warehouse_id/threshold", thresholdHandler.DeleteOverride)

	// Companies, sus bodegas, ventas y alertas
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	salesHandler := NewSalesOrderHandler(deps.RecordSale)
	alertHandler := NewAlertHandler(deps.LowStock)
	companies := api.Group("/companies")
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Post("/:id/warehouses", warehouseHandler.Create)
	companies.Get("/:id/warehouses", warehouseHandler.List)
	companies.Post("/:id/sales-orders", salesHandler.Create)
	companies.Get("/:id/alerts/low-stock", alertHandler.LowStock)
	companies.Get("/:id/alerts/low-stock/report", alertHandler.LowStockReport)

	// Warehouses
	warehouses := api.Group("/warehouses")
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Put("/:id/products/:product_id", supplierHandler.LinkProduct)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.ListChanges)
	inv := api.Group("/inventory")
	inv.Post("/adjustments", inventoryHandler.Adjust)
	inv.Get("/changes", inventoryHandler.ListChanges)
}
