// Package alert calcula las alertas de stock bajo de una empresa.
//
// El cálculo se hace por etapas sobre un Snapshot ya leído del almacenamiento:
//
//	1. alcance: bodegas de la empresa
//	2. ventas de la ventana [now-days, now] agrupadas por (producto, bodega)
//	3. stock actual por (producto, bodega)
//	4. umbral efectivo: override > default > 0
//	5. candidato si hay fila de ventas en la ventana y stock < umbral
//	6. proveedor con menor lead time (empate: menor supplier_id)
//	7. proyección de días hasta quiebre de stock
//
// Ninguna etapa depende del motor SQL, así que el resultado es el mismo sobre
// PostgreSQL o sobre el almacenamiento en memoria.
package alert

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultWindowDays ventana por defecto para la velocidad de ventas.
	DefaultWindowDays = 30
	// MaxWindowDays tope de la ventana (100 años).
	MaxWindowDays = 36500
)

// Key identifica un par (producto, bodega).
type Key struct {
	ProductID   int64
	WarehouseID int64
}

// ProductInfo datos del producto necesarios en la alerta.
type ProductInfo struct {
	ID   int64
	Name string
	SKU  string
}

// WarehouseInfo bodega dentro del alcance de la empresa.
type WarehouseInfo struct {
	ID   int64
	Name string
}

// StockRow cantidad actual de un par (producto, bodega).
type StockRow struct {
	ProductID   int64
	WarehouseID int64
	Quantity    int64
}

// SaleLine línea de una orden de venta de la empresa.
type SaleLine struct {
	ProductID   int64
	WarehouseID int64
	Quantity    int64
	OrderedAt   time.Time
}

// SupplierOption un proveedor vinculado a un producto.
type SupplierOption struct {
	ProductID    int64
	SupplierID   int64
	Name         string
	ContactEmail *string
	LeadTimeDays int
}

// Snapshot insumos del cálculo para una empresa.
type Snapshot struct {
	CompanyID  int64
	Warehouses []WarehouseInfo
	Products   map[int64]ProductInfo
	Stock      []StockRow
	Sales      []SaleLine
	Defaults   map[int64]int64
	Overrides  map[Key]int64
	Suppliers  []SupplierOption
}

// Supplier proveedor elegido para la alerta.
type Supplier struct {
	ID           int64
	Name         string
	ContactEmail *string
	LeadTimeDays int
}

// Alert un par (producto, bodega) con stock bajo el umbral efectivo.
type Alert struct {
	ProductID         int64
	ProductName       string
	SKU               string
	WarehouseID       int64
	WarehouseName     string
	CurrentStock      int64
	Threshold         int64
	QtyWindow         int64
	AverageDailyRate  decimal.Decimal
	DaysUntilStockout *int64 // nil si no hubo ventas en la ventana
	Supplier          *Supplier
}

// Window ventana de ventas [Since, Until].
type Window struct {
	Days  int
	Since time.Time
	Until time.Time
}

// NormalizeDays aplica def a valores no positivos y recorta a MaxWindowDays.
func NormalizeDays(days, def int) int {
	if def <= 0 {
		def = DefaultWindowDays
	}
	if days <= 0 {
		days = def
	}
	if days > MaxWindowDays {
		days = MaxWindowDays
	}
	return days
}

// NewWindow construye la ventana que termina en now. days debe venir normalizado.
func NewWindow(days int, now time.Time) Window {
	now = now.UTC()
	return Window{Days: days, Since: now.AddDate(0, 0, -days), Until: now}
}

// Contains informa si t cae dentro de la ventana (ambos extremos incluidos).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Since) && !t.After(w.Until)
}

// Compute ejecuta todas las etapas y devuelve las alertas ordenadas por (producto, bodega).
func Compute(s *Snapshot, w Window) []Alert {
	if s == nil {
		return []Alert{}
	}

	// 1. alcance
	scope := make(map[int64]WarehouseInfo, len(s.Warehouses))
	for _, wh := range s.Warehouses {
		scope[wh.ID] = wh
	}

	// 2. ventas de la ventana
	sales := WindowSales(s.Sales, w)

	// 6. proveedor preferido por producto
	suppliers := BestSuppliers(s.Suppliers)

	alerts := make([]Alert, 0)
	// 3. stock actual
	for _, row := range s.Stock {
		wh, ok := scope[row.WarehouseID]
		if !ok {
			continue
		}
		product, ok := s.Products[row.ProductID]
		if !ok {
			continue
		}
		key := Key{ProductID: row.ProductID, WarehouseID: row.WarehouseID}

		// 5. la presencia de ventas en la ventana es la única compuerta; una suma 0 pasa
		qty, sold := sales[key]
		if !sold {
			continue
		}
		// 4. umbral efectivo
		threshold := EffectiveThreshold(key, s.Overrides, s.Defaults)
		if row.Quantity >= threshold {
			continue
		}

		a := Alert{
			ProductID:         product.ID,
			ProductName:       product.Name,
			SKU:               product.SKU,
			WarehouseID:       wh.ID,
			WarehouseName:     wh.Name,
			CurrentStock:      row.Quantity,
			Threshold:         threshold,
			QtyWindow:         qty,
			AverageDailyRate:  AverageDailyRate(qty, w.Days),
			DaysUntilStockout: ProjectStockout(row.Quantity, qty, w.Days),
		}
		if opt, ok := suppliers[row.ProductID]; ok {
			a.Supplier = &Supplier{
				ID:           opt.SupplierID,
				Name:         opt.Name,
				ContactEmail: opt.ContactEmail,
				LeadTimeDays: opt.LeadTimeDays,
			}
		}
		alerts = append(alerts, a)
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].ProductID != alerts[j].ProductID {
			return alerts[i].ProductID < alerts[j].ProductID
		}
		return alerts[i].WarehouseID < alerts[j].WarehouseID
	})
	return alerts
}

// WindowSales suma las cantidades vendidas dentro de la ventana por (producto, bodega).
// Un par aparece en el mapa aunque su suma sea 0.
func WindowSales(lines []SaleLine, w Window) map[Key]int64 {
	out := make(map[Key]int64)
	for _, l := range lines {
		if !w.Contains(l.OrderedAt) {
			continue
		}
		k := Key{ProductID: l.ProductID, WarehouseID: l.WarehouseID}
		out[k] += l.Quantity
	}
	return out
}

// EffectiveThreshold resuelve override > default del producto > 0.
func EffectiveThreshold(k Key, overrides map[Key]int64, defaults map[int64]int64) int64 {
	if t, ok := overrides[k]; ok {
		return t
	}
	if t, ok := defaults[k.ProductID]; ok {
		return t
	}
	return 0
}

// BestSuppliers elige por producto el proveedor de menor lead time; empate por menor SupplierID.
func BestSuppliers(opts []SupplierOption) map[int64]SupplierOption {
	best := make(map[int64]SupplierOption)
	for _, o := range opts {
		cur, ok := best[o.ProductID]
		if !ok ||
			o.LeadTimeDays < cur.LeadTimeDays ||
			(o.LeadTimeDays == cur.LeadTimeDays && o.SupplierID < cur.SupplierID) {
			best[o.ProductID] = o
		}
	}
	return best
}

// AverageDailyRate unidades vendidas por día en la ventana, redondeado a 2 decimales.
func AverageDailyRate(qty int64, days int) decimal.Decimal {
	if qty <= 0 || days <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(qty).DivRound(decimal.NewFromInt(int64(days)), 2)
}

// ProjectStockout días enteros hasta agotar stock: floor(stock / (qty/days)).
// Se calcula como floor(stock*days/qty) en aritmética exacta. nil si qty es 0.
func ProjectStockout(stock, qty int64, days int) *int64 {
	if qty <= 0 || days <= 0 {
		return nil
	}
	if stock <= 0 {
		zero := int64(0)
		return &zero
	}
	num := decimal.NewFromInt(stock).Mul(decimal.NewFromInt(int64(days)))
	q, _ := num.QuoRem(decimal.NewFromInt(qty), 0)
	n := q.IntPart()
	return &n
}
