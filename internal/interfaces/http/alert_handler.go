package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
)

// AlertHandler alertas de stock bajo por empresa.
type AlertHandler struct {
	uc *inventory.LowStockAlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *inventory.LowStockAlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// LowStock godoc
// @Summary      Alertas de stock bajo
// @Description  Pares producto/bodega con ventas en la ventana y stock por debajo del umbral efectivo,
// @Description  con proyección de agotamiento y proveedor sugerido. days inválido o <= 0 usa el valor por defecto.
// @Tags         alerts
// @Produce      json
// @Param        id    path   int  true   "ID de la empresa"
// @Param        days  query  int  false  "Ventana en días"  default(30)
// @Success      200   {object}  dto.LowStockAlertsResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/alerts/low-stock [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	companyID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	out, err := h.uc.GetAlerts(c.UserContext(), companyID, c.QueryInt("days", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStockReport godoc
// @Summary      Reporte PDF de stock bajo
// @Tags         alerts
// @Produce      application/pdf
// @Param        id    path   int  true   "ID de la empresa"
// @Param        days  query  int  false  "Ventana en días"  default(30)
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/alerts/low-stock/report [get]
func (h *AlertHandler) LowStockReport(c *fiber.Ctx) error {
	companyID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	pdf, err := h.uc.Report(c.UserContext(), companyID, c.QueryInt("days", 0))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="stock-bajo-%d.pdf"`, companyID))
	return c.Send(pdf)
}
