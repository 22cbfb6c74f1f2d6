package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/pkg/metrics"
)

// SaleHandler maneja ventas de carrito, su historial y su anulación.
type SaleHandler struct {
	saleUC *ledger.SaleUseCase
}

// NewSaleHandler crea el handler de ventas.
func NewSaleHandler(saleUC *ledger.SaleUseCase) *SaleHandler {
	return &SaleHandler{saleUC: saleUC}
}

// Sell procesa el carrito completo contra el stock de la tienda. Un gerente
// vende siempre en su tienda; el admin indica store_id en el body.
func (h *SaleHandler) Sell(c *fiber.Ctx) error {
	var req dto.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	actor := ActorFrom(c)
	storeID := req.StoreID
	if !actor.IsAdmin() {
		storeID = actor.StoreID
	}
	items := make([]ledger.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ledger.CartLine{ArticleID: it.ArticleID, Quantity: it.Quantity})
	}
	sales, err := h.saleUC.Sell(c.Context(), actor, storeID, items)
	if err != nil {
		return writeError(c, err)
	}
	metrics.SalesTotal.Inc()
	resp := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, toSaleResponse(s))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// History historial de ventas con filtros. Un gerente solo ve su tienda.
func (h *SaleHandler) History(c *fiber.Ctx) error {
	filter := repository.SaleFilter{
		StoreID:    c.Query("store_id"),
		OperatorID: c.Query("operator_id"),
		Limit:      c.QueryInt("limit"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return badRequest(c)
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return badRequest(c)
		}
		filter.To = &t
	}
	sales, err := h.saleUC.ListSales(ActorFrom(c), filter)
	if err != nil {
		return writeError(c, err)
	}
	resp := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, toSaleResponse(s))
	}
	return c.JSON(resp)
}

// Cancel anula una venta reponiendo el stock. Devuelve el movimiento
// compensatorio.
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	comp, err := h.saleUC.CancelSale(c.Context(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	metrics.SaleCancellations.Inc()
	return c.JSON(usecase.ToMovementResponse(comp))
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:         s.ID,
		ArticleID:  s.ArticleID,
		Quantity:   s.Quantity,
		Total:      s.Total,
		OperatorID: s.OperatorID,
		StoreID:    s.StoreID,
		Cancelled:  s.Cancelled,
		CreatedAt:  s.CreatedAt,
	}
}
