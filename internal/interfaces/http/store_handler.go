package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
)

// StoreHandler maneja el CRUD de tiendas (solo admin).
type StoreHandler struct {
	storeUC *usecase.StoreUseCase
}

// NewStoreHandler crea el handler de tiendas.
func NewStoreHandler(storeUC *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{storeUC: storeUC}
}

// Create da de alta una tienda. Solo puede existir una central.
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	store, err := h.storeUC.Create(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

// List lista todas las tiendas con su conteo de artículos.
func (h *StoreHandler) List(c *fiber.Ctx) error {
	stores, err := h.storeUC.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stores)
}

// GetByID devuelve una tienda.
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	store, err := h.storeUC.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if store == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "tienda no encontrada"})
	}
	return c.JSON(store)
}

// Update modifica una tienda. El tipo de la central es inmutable.
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	store, err := h.storeUC.Update(c.Params("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	if store == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "tienda no encontrada"})
	}
	return c.JSON(store)
}

// Delete elimina una tienda sin artículos (nunca la central).
func (h *StoreHandler) Delete(c *fiber.Ctx) error {
	if err := h.storeUC.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "tienda eliminada"})
}
