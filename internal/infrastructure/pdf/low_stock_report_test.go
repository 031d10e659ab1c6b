package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
)

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", formatThousands(0))
	assert.Equal(t, "999", formatThousands(999))
	assert.Equal(t, "25.000", formatThousands(25000))
	assert.Equal(t, "1.000.000", formatThousands(1000000))
	assert.Equal(t, "-1.500", formatThousands(-1500))
}

func TestGenerateLowStockReport(t *testing.T) {
	g := NewLowStockReportGenerator()
	g.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	days := int64(5)
	name := "Proveedor"

	report := &dto.LowStockAlertsResponse{
		Days:        30,
		TotalAlerts: 2,
		Alerts: []dto.LowStockAlertDTO{
			{ProductID: 1, ProductName: "Widget", SKU: "W-1", WarehouseName: "Central", CurrentStock: 10, Threshold: 20, DaysUntilStockout: &days, Supplier: dto.AlertSupplierDTO{Name: &name}},
			{ProductID: 2, ProductName: "Tornillo", SKU: "T-9", WarehouseName: "Norte", CurrentStock: 0, Threshold: 1500},
		},
	}

	pdf, err := g.GenerateLowStockReport(dto.CompanyResponse{ID: 1, Name: "Acme"}, report)
	require.NoError(t, err)
	require.Greater(t, len(pdf), 100)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGenerateLowStockReport_SinAlertas(t *testing.T) {
	pdf, err := NewLowStockReportGenerator().GenerateLowStockReport(
		dto.CompanyResponse{ID: 1, Name: "Acme"},
		&dto.LowStockAlertsResponse{Alerts: []dto.LowStockAlertDTO{}, Days: 30},
	)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
