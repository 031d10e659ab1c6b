package ports

import "github.com/jhoicas/stockflow-api/internal/application/dto"

// LowStockReportGenerator genera el reporte PDF de alertas de stock bajo.
type LowStockReportGenerator interface {
	GenerateLowStockReport(company dto.CompanyResponse, report *dto.LowStockAlertsResponse) ([]byte, error)
}
