package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// InventoryHandler ajustes manuales y consulta del ledger de movimientos.
type InventoryHandler struct {
	adjust  *inventory.AdjustStockUseCase
	changes *inventory.ListInventoryChangesUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjust *inventory.AdjustStockUseCase, changes *inventory.ListInventoryChangesUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, changes: changes}
}

// Adjust godoc
// @Summary      Ajustar stock
// @Description  Suma delta (positivo o negativo) a la fila de inventario y registra el movimiento.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, warehouse_id, delta, reason"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if ok, err := parseJSON(c, &in); !ok {
		return err
	}
	out, err := h.adjust.Execute(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListChanges godoc
// @Summary      Listar movimientos de inventario
// @Tags         inventory
// @Produce      json
// @Param        product_id    query  int  false  "Filtrar por producto"
// @Param        warehouse_id  query  int  false  "Filtrar por bodega"
// @Param        limit         query  int  false  "Límite"  default(20)
// @Param        offset        query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.InventoryChangeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/changes [get]
func (h *InventoryHandler) ListChanges(c *fiber.Ctx) error {
	productID, err := queryID(c, "product_id")
	if err != nil {
		return writeError(c, err)
	}
	warehouseID, err := queryID(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.changes.Execute(c.UserContext(), repository.InventoryChangeFilter{
		ProductID:   productID,
		WarehouseID: warehouseID,
	}, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
