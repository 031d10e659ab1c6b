package ports

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
)

// AlertCache caché de respuestas de alertas de stock bajo por (empresa, días).
// Las implementaciones registran sus propios fallos: un error de caché nunca rompe la petición.
//
// Get devuelve también la clave vigente al momento de la lectura; Set guarda bajo esa clave.
// Así, si una mutación invalida mientras se calcula, el resultado queda bajo una versión ya
// descartada y nadie lo vuelve a leer. Clave vacía = no guardar.
type AlertCache interface {
	Get(ctx context.Context, companyID int64, days int) (resp *dto.LowStockAlertsResponse, key string, ok bool)
	Set(ctx context.Context, key string, resp *dto.LowStockAlertsResponse)
	// InvalidateCompany descarta lo cacheado de una empresa (stock, ventas, bodegas).
	InvalidateCompany(ctx context.Context, companyID int64)
	// InvalidateAll descarta todo (productos, umbrales, proveedores afectan a todas las empresas).
	InvalidateAll(ctx context.Context)
}

// NopAlertCache caché deshabilitada.
type NopAlertCache struct{}

func (NopAlertCache) Get(context.Context, int64, int) (*dto.LowStockAlertsResponse, string, bool) {
	return nil, "", false
}
func (NopAlertCache) Set(context.Context, string, *dto.LowStockAlertsResponse) {}
func (NopAlertCache) InvalidateCompany(context.Context, int64)                 {}
func (NopAlertCache) InvalidateAll(context.Context)                            {}

// OrNop devuelve c, o NopAlertCache si c es nil.
func OrNop(c AlertCache) AlertCache {
	if c == nil {
		return NopAlertCache{}
	}
	return c
}
