package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
)

// ArticleHandler maneja el stock por tienda. Los artículos nacen por
// aprovisionamiento o transferencia, nunca por POST directo.
type ArticleHandler struct {
	articleUC *usecase.ArticleUseCase
}

// NewArticleHandler crea el handler de artículos.
func NewArticleHandler(articleUC *usecase.ArticleUseCase) *ArticleHandler {
	return &ArticleHandler{articleUC: articleUC}
}

// List lista los artículos visibles para el actor: todos para el admin, los
// de su tienda para un gerente.
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	articles, err := h.articleUC.List(ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(articles)
}

// Create siempre rechaza: el stock solo entra por aprovisionamiento o
// transferencia.
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Code:    "FORBIDDEN",
		Message: "creación manual de artículos deshabilitada: use aprovisionamiento o transferencia",
	})
}

// Update edición administrativa: solo precios.
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	article, err := h.articleUC.Update(c.Params("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	if article == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "artículo no encontrado"})
	}
	return c.JSON(article)
}

// Delete elimina un artículo con stock cero.
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	if err := h.articleUC.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "artículo eliminado"})
}
