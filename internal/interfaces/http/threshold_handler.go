package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// ThresholdHandler umbrales de stock bajo por producto y por bodega.
type ThresholdHandler struct {
	uc *usecase.ThresholdUseCase
}

func NewThresholdHandler(uc *usecase.ThresholdUseCase) *ThresholdHandler {
	return &ThresholdHandler{uc: uc}
}

// SetDefault godoc
// @Summary      Fijar umbral por defecto del producto
// @Tags         thresholds
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ThresholdRequest  true  "threshold >= 0"
// @Success      200   {object}  dto.ThresholdResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/threshold [put]
func (h *ThresholdHandler) SetDefault(c *fiber.Ctx) error {
	productID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in dto.ThresholdRequest
	if ok, err := parseJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetDefault(c.UserContext(), productID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetOverride godoc
// @Summary      Fijar umbral del producto en una bodega
// @Tags         thresholds
// @Accept       json
// @Produce      json
// @Param        id            path  int  true  "ID del producto"
// @Param        warehouse_id  path  int  true  "ID de la bodega"
// @Param        body          body  dto.ThresholdRequest  true  "threshold >= 0"
// @Success      200   {object}  dto.ThresholdResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/warehouses/{warehouse_id}/threshold [put]
func (h *ThresholdHandler) SetOverride(c *fiber.Ctx) error {
	productID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	warehouseID, ok, err := pathID(c, "warehouse_id")
	if !ok {
		return err
	}
	var in dto.ThresholdRequest
	if ok, err := parseJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetOverride(c.UserContext(), productID, warehouseID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteOverride godoc
// @Summary      Quitar el umbral específico de una bodega
// @Tags         thresholds
// @Param        id            path  int  true  "ID del producto"
// @Param        warehouse_id  path  int  true  "ID de la bodega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/warehouses/{warehouse_id}/threshold [delete]
func (h *ThresholdHandler) DeleteOverride(c *fiber.Ctx) error {
	productID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	warehouseID, ok, err := pathID(c, "warehouse_id")
	if !ok {
		return err
	}
	if err := h.uc.DeleteOverride(c.UserContext(), productID, warehouseID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
