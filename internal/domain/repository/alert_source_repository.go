package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/alert"
)

// AlertSourceRepository lee los insumos del motor de alertas de una empresa.
// Las ventas devueltas deben incluir al menos las de la ventana; el dominio vuelve a filtrar.
type AlertSourceRepository interface {
	LoadSnapshot(ctx context.Context, companyID int64, window alert.Window) (*alert.Snapshot, error)
}
