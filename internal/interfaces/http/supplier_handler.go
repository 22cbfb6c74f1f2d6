package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
)

// SupplierHandler maneja el CRUD de proveedores (solo admin).
type SupplierHandler struct {
	supplierUC *usecase.SupplierUseCase
}

// NewSupplierHandler crea el handler de proveedores.
func NewSupplierHandler(supplierUC *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{supplierUC: supplierUC}
}

// Create da de alta un proveedor.
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	supplier, err := h.supplierUC.Create(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// List lista todos los proveedores.
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.supplierUC.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(suppliers)
}

// Update modifica un proveedor.
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	supplier, err := h.supplierUC.Update(c.Params("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	if supplier == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "proveedor no encontrado"})
	}
	return c.JSON(supplier)
}

// Delete elimina un proveedor.
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.supplierUC.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "proveedor eliminado"})
}
