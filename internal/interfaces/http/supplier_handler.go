package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// SupplierHandler proveedores y sus vínculos con productos.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "name, contact_email, phone"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if ok, err := parseJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// LinkProduct godoc
// @Summary      Vincular proveedor con producto
// @Description  Crea o actualiza el tiempo de entrega del proveedor para el producto (por defecto 7 días).
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id          path  int  true  "ID del proveedor"
// @Param        product_id  path  int  true  "ID del producto"
// @Param        body        body  dto.LinkSupplierProductRequest  true  "lead_time_days"
// @Success      200   {object}  dto.SupplierProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/products/{product_id} [put]
func (h *SupplierHandler) LinkProduct(c *fiber.Ctx) error {
	supplierID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	productID, ok, err := pathID(c, "product_id")
	if !ok {
		return err
	}
	var in dto.LinkSupplierProductRequest
	if ok, err := parseJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.LinkProduct(c.UserContext(), supplierID, productID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proveedor
// @Tags         suppliers
// @Param        id   path  int  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
