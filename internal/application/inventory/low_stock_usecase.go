package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/alert"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// LowStockAlertUseCase calcula las alertas de stock bajo de una empresa y su reporte PDF.
type LowStockAlertUseCase struct {
	companyRepo repository.CompanyRepository
	source      repository.AlertSourceRepository
	cache       ports.AlertCache
	report      ports.LowStockReportGenerator
	defaultDays int
	now         func() time.Time
}

// NewLowStockAlertUseCase construye el caso de uso. cache y report pueden ser nil;
// defaultDays <= 0 usa alert.DefaultWindowDays.
func NewLowStockAlertUseCase(
	companyRepo repository.CompanyRepository,
	source repository.AlertSourceRepository,
	cache ports.AlertCache,
	report ports.LowStockReportGenerator,
	defaultDays int,
) *LowStockAlertUseCase {
	if defaultDays <= 0 {
		defaultDays = alert.DefaultWindowDays
	}
	return &LowStockAlertUseCase{
		companyRepo: companyRepo,
		source:      source,
		cache:       ports.OrNop(cache),
		report:      report,
		defaultDays: defaultDays,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetAlerts devuelve las alertas para la ventana de days días (<= 0 usa el default).
func (uc *LowStockAlertUseCase) GetAlerts(ctx context.Context, companyID int64, days int) (*dto.LowStockAlertsResponse, error) {
	if _, err := uc.company(ctx, companyID); err != nil {
		return nil, err
	}
	days = alert.NormalizeDays(days, uc.defaultDays)

	// la clave se fija antes de leer los datos
	cached, key, ok := uc.cache.Get(ctx, companyID, days)
	if ok {
		cached.Days = days
		return cached, nil
	}
	resp, err := uc.compute(ctx, companyID, days)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(ctx, key, resp)
	return resp, nil
}

// Report genera el PDF con las mismas alertas (siempre recalculadas: la tasa diaria no se cachea).
func (uc *LowStockAlertUseCase) Report(ctx context.Context, companyID int64, days int) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("generador de reportes no configurado")
	}
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp, err := uc.compute(ctx, companyID, alert.NormalizeDays(days, uc.defaultDays))
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateLowStockReport(dto.CompanyResponse{
		ID:        company.ID,
		Name:      company.Name,
		CreatedAt: company.CreatedAt,
	}, resp)
}

func (uc *LowStockAlertUseCase) company(ctx context.Context, companyID int64) (*entity.Company, error) {
	c, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("company %d: %w", companyID, domain.ErrNotFound)
	}
	return c, nil
}

func (uc *LowStockAlertUseCase) compute(ctx context.Context, companyID int64, days int) (*dto.LowStockAlertsResponse, error) {
	window := alert.NewWindow(days, uc.now())
	snap, err := uc.source.LoadSnapshot(ctx, companyID, window)
	if err != nil {
		return nil, err
	}
	alerts := alert.Compute(snap, window)

	resp := &dto.LowStockAlertsResponse{
		Alerts:      make([]dto.LowStockAlertDTO, 0, len(alerts)),
		TotalAlerts: len(alerts),
		Days:        days,
	}
	for _, a := range alerts {
		item := dto.LowStockAlertDTO{
			ProductID:         a.ProductID,
			ProductName:       a.ProductName,
			SKU:               a.SKU,
			WarehouseID:       a.WarehouseID,
			WarehouseName:     a.WarehouseName,
			CurrentStock:      a.CurrentStock,
			Threshold:         a.Threshold,
			DaysUntilStockout: a.DaysUntilStockout,
			AverageDailyRate:  a.AverageDailyRate.StringFixed(2),
		}
		if a.Supplier != nil {
			id, name := a.Supplier.ID, a.Supplier.Name
			item.Supplier = dto.AlertSupplierDTO{ID: &id, Name: &name, ContactEmail: a.Supplier.ContactEmail}
		}
		resp.Alerts = append(resp.Alerts, item)
	}
	return resp, nil
}
