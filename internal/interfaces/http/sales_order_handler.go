package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
)

// SalesOrderHandler registro de ventas por empresa.
type SalesOrderHandler struct {
	uc *inventory.RecordSaleUseCase
}

func NewSalesOrderHandler(uc *inventory.RecordSaleUseCase) *SalesOrderHandler {
	return &SalesOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock de cada línea y registra los movimientos; todo o nada.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la empresa"
// @Param        body  body  dto.CreateSalesOrderRequest  true  "ordered_at opcional, items"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/sales-orders [post]
func (h *SalesOrderHandler) Create(c *fiber.Ctx) error {
	companyID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in dto.CreateSalesOrderRequest
	if ok, err := parseJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Execute(c.UserContext(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
