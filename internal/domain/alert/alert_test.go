package alert_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/domain/alert"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// scenario construye una empresa con una bodega (10) y un producto (1) con umbral default 20.
func scenario(stock int64, soldLast30 int64) *alert.Snapshot {
	s := &alert.Snapshot{
		CompanyID:  1,
		Warehouses: []alert.WarehouseInfo{{ID: 10, Name: "Central"}},
		Products:   map[int64]alert.ProductInfo{1: {ID: 1, Name: "Widget", SKU: "W-1"}},
		Stock:      []alert.StockRow{{ProductID: 1, WarehouseID: 10, Quantity: stock}},
		Defaults:   map[int64]int64{1: 20},
		Overrides:  map[alert.Key]int64{},
	}
	if soldLast30 > 0 {
		s.Sales = []alert.SaleLine{
			{ProductID: 1, WarehouseID: 10, Quantity: soldLast30 / 2, OrderedAt: now.AddDate(0, 0, -3)},
			{ProductID: 1, WarehouseID: 10, Quantity: soldLast30 - soldLast30/2, OrderedAt: now.AddDate(0, 0, -20)},
		}
	}
	return s
}

func TestCompute_StockBajoUmbralEmiteAlerta(t *testing.T) {
	alerts := alert.Compute(scenario(10, 60), alert.NewWindow(30, now))

	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, int64(1), a.ProductID)
	assert.Equal(t, "Widget", a.ProductName)
	assert.Equal(t, "W-1", a.SKU)
	assert.Equal(t, int64(10), a.WarehouseID)
	assert.Equal(t, "Central", a.WarehouseName)
	assert.Equal(t, int64(10), a.CurrentStock)
	assert.Equal(t, int64(20), a.Threshold)
	assert.Equal(t, "2", a.AverageDailyRate.String())
	require.NotNil(t, a.DaysUntilStockout)
	assert.Equal(t, int64(5), *a.DaysUntilStockout)
	assert.Nil(t, a.Supplier)
}

func TestCompute_StockSobreUmbralNoAlerta(t *testing.T) {
	alerts := alert.Compute(scenario(25, 60), alert.NewWindow(30, now))
	assert.Empty(t, alerts)
}

func TestCompute_StockIgualAlUmbralNoAlerta(t *testing.T) {
	alerts := alert.Compute(scenario(20, 60), alert.NewWindow(30, now))
	assert.Empty(t, alerts)
}

func TestCompute_SinVentasEnVentanaExcluido(t *testing.T) {
	alerts := alert.Compute(scenario(1, 0), alert.NewWindow(30, now))
	assert.Empty(t, alerts)
}

func TestCompute_VentasFueraDeVentanaNoCuentan(t *testing.T) {
	s := scenario(5, 0)
	s.Sales = []alert.SaleLine{
		{ProductID: 1, WarehouseID: 10, Quantity: 50, OrderedAt: now.AddDate(0, 0, -31)},
		{ProductID: 1, WarehouseID: 10, Quantity: 50, OrderedAt: now.Add(time.Hour)},
	}
	assert.Empty(t, alert.Compute(s, alert.NewWindow(30, now)))
}

func TestCompute_LimitesDeVentanaIncluidos(t *testing.T) {
	w := alert.NewWindow(30, now)
	s := scenario(5, 0)
	s.Sales = []alert.SaleLine{
		{ProductID: 1, WarehouseID: 10, Quantity: 3, OrderedAt: w.Since},
		{ProductID: 1, WarehouseID: 10, Quantity: 3, OrderedAt: w.Until},
	}
	alerts := alert.Compute(s, w)
	require.Len(t, alerts, 1)
	assert.Equal(t, int64(6), alerts[0].QtyWindow)
}

func TestCompute_VentaConCantidadCeroPasaLaCompuertaSinProyeccion(t *testing.T) {
	s := scenario(5, 0)
	s.Sales = []alert.SaleLine{{ProductID: 1, WarehouseID: 10, Quantity: 0, OrderedAt: now.AddDate(0, 0, -1)}}

	alerts := alert.Compute(s, alert.NewWindow(30, now))
	require.Len(t, alerts, 1)
	assert.Nil(t, alerts[0].DaysUntilStockout)
	assert.True(t, alerts[0].AverageDailyRate.IsZero())
}

func TestCompute_OverrideTienePrioridadSobreDefault(t *testing.T) {
	// default 20 alertaría con stock 10; override 5 no.
	s := scenario(10, 60)
	s.Overrides[alert.Key{ProductID: 1, WarehouseID: 10}] = 5
	assert.Empty(t, alert.Compute(s, alert.NewWindow(30, now)))

	// default 5 no alertaría; override 50 sí, y el umbral reportado es el del override.
	s = scenario(10, 60)
	s.Defaults[1] = 5
	s.Overrides[alert.Key{ProductID: 1, WarehouseID: 10}] = 50
	alerts := alert.Compute(s, alert.NewWindow(30, now))
	require.Len(t, alerts, 1)
	assert.Equal(t, int64(50), alerts[0].Threshold)
}

func TestCompute_SinUmbralNuncaAlerta(t *testing.T) {
	s := scenario(0, 60)
	delete(s.Defaults, 1)
	assert.Empty(t, alert.Compute(s, alert.NewWindow(30, now)))
}

func TestCompute_NuncaIncluyeStockMayorOIgualAlUmbral(t *testing.T) {
	thresholds := []int64{0, 1, 7, 20, 100}
	for _, def := range thresholds {
		for _, ov := range append([]int64{-1}, thresholds...) {
			for stock := int64(0); stock <= 120; stock += 3 {
				s := scenario(stock, 30)
				s.Defaults[1] = def
				effective := def
				if ov >= 0 {
					s.Overrides[alert.Key{ProductID: 1, WarehouseID: 10}] = ov
					effective = ov
				}
				alerts := alert.Compute(s, alert.NewWindow(30, now))
				if stock >= effective {
					assert.Empty(t, alerts, "stock=%d default=%d override=%d", stock, def, ov)
				} else {
					assert.Len(t, alerts, 1, "stock=%d default=%d override=%d", stock, def, ov)
				}
			}
		}
	}
}

func TestCompute_AlcanceSoloBodegasDeLaEmpresa(t *testing.T) {
	s := scenario(1, 60)
	// stock y ventas en una bodega ajena (99) que no está en el alcance
	s.Stock = append(s.Stock, alert.StockRow{ProductID: 1, WarehouseID: 99, Quantity: 0})
	s.Sales = append(s.Sales, alert.SaleLine{ProductID: 1, WarehouseID: 99, Quantity: 10, OrderedAt: now})

	alerts := alert.Compute(s, alert.NewWindow(30, now))
	require.Len(t, alerts, 1)
	assert.Equal(t, int64(10), alerts[0].WarehouseID)
}

func TestCompute_OrdenDeterministico(t *testing.T) {
	s := &alert.Snapshot{
		Warehouses: []alert.WarehouseInfo{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}},
		Products: map[int64]alert.ProductInfo{
			3: {ID: 3, Name: "P3", SKU: "S3"},
			1: {ID: 1, Name: "P1", SKU: "S1"},
		},
		Defaults: map[int64]int64{1: 10, 3: 10},
	}
	for _, pid := range []int64{3, 1} {
		for _, wid := range []int64{2, 1} {
			s.Stock = append(s.Stock, alert.StockRow{ProductID: pid, WarehouseID: wid, Quantity: 1})
			s.Sales = append(s.Sales, alert.SaleLine{ProductID: pid, WarehouseID: wid, Quantity: 1, OrderedAt: now})
		}
	}

	alerts := alert.Compute(s, alert.NewWindow(30, now))
	require.Len(t, alerts, 4)
	got := make([]alert.Key, 0, len(alerts))
	for _, a := range alerts {
		got = append(got, alert.Key{ProductID: a.ProductID, WarehouseID: a.WarehouseID})
	}
	assert.Equal(t, []alert.Key{
		{ProductID: 1, WarehouseID: 1},
		{ProductID: 1, WarehouseID: 2},
		{ProductID: 3, WarehouseID: 1},
		{ProductID: 3, WarehouseID: 2},
	}, got)
}

func TestCompute_ProveedorConMenorLeadTime(t *testing.T) {
	email := "ventas@rapido.co"
	s := scenario(10, 60)
	s.Suppliers = []alert.SupplierOption{
		{ProductID: 1, SupplierID: 7, Name: "Lento", LeadTimeDays: 14},
		{ProductID: 1, SupplierID: 9, Name: "Rápido", ContactEmail: &email, LeadTimeDays: 3},
		{ProductID: 2, SupplierID: 1, Name: "Otro producto", LeadTimeDays: 1},
	}

	alerts := alert.Compute(s, alert.NewWindow(30, now))
	require.Len(t, alerts, 1)
	require.NotNil(t, alerts[0].Supplier)
	assert.Equal(t, int64(9), alerts[0].Supplier.ID)
	assert.Equal(t, "Rápido", alerts[0].Supplier.Name)
	assert.Equal(t, &email, alerts[0].Supplier.ContactEmail)
}

func TestBestSuppliers_EmpateGanaMenorID(t *testing.T) {
	opts := []alert.SupplierOption{
		{ProductID: 1, SupplierID: 8, LeadTimeDays: 5},
		{ProductID: 1, SupplierID: 4, LeadTimeDays: 5},
		{ProductID: 1, SupplierID: 6, LeadTimeDays: 5},
	}
	best := alert.BestSuppliers(opts)
	assert.Equal(t, int64(4), best[1].SupplierID)

	// el orden de entrada no cambia el resultado
	reversed := []alert.SupplierOption{opts[2], opts[1], opts[0]}
	assert.Equal(t, int64(4), alert.BestSuppliers(reversed)[1].SupplierID)
}

func TestProjectStockout(t *testing.T) {
	// 90 unidades en 30 días, stock 50 -> floor(50 / 3) = 16
	d := alert.ProjectStockout(50, 90, 30)
	require.NotNil(t, d)
	assert.Equal(t, int64(16), *d)

	d = alert.ProjectStockout(10, 60, 30)
	require.NotNil(t, d)
	assert.Equal(t, int64(5), *d)

	d = alert.ProjectStockout(0, 60, 30)
	require.NotNil(t, d)
	assert.Equal(t, int64(0), *d)

	assert.Nil(t, alert.ProjectStockout(50, 0, 30))
}

func TestAverageDailyRate(t *testing.T) {
	assert.Equal(t, "3", alert.AverageDailyRate(90, 30).String())
	assert.Equal(t, "0.33", alert.AverageDailyRate(10, 30).String())
	assert.True(t, alert.AverageDailyRate(0, 30).IsZero())
}

func TestNormalizeDays(t *testing.T) {
	assert.Equal(t, 30, alert.NormalizeDays(0, 30))
	assert.Equal(t, 30, alert.NormalizeDays(-7, 30))
	assert.Equal(t, 7, alert.NormalizeDays(7, 30))
	assert.Equal(t, 30, alert.NormalizeDays(0, 0))
	assert.Equal(t, alert.MaxWindowDays, alert.NormalizeDays(1_000_000, 30))
}

func TestCompute_SnapshotNil(t *testing.T) {
	assert.Empty(t, alert.Compute(nil, alert.NewWindow(30, now)))
}
