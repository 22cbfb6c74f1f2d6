package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/pkg/metrics"
)

// InventoryHandler maneja las operaciones del ledger sobre el stock:
// transferencias, reaprovisionamientos, aprovisionamientos, historial de
// movimientos y anulaciones.
type InventoryHandler struct {
	transferUC *ledger.TransferUseCase
	intakeUC   *ledger.IntakeUseCase
	reversalUC *ledger.ReversalUseCase
	movementUC *usecase.MovementUseCase
}

// NewInventoryHandler crea el handler del ledger.
func NewInventoryHandler(
	transferUC *ledger.TransferUseCase,
	intakeUC *ledger.IntakeUseCase,
	reversalUC *ledger.ReversalUseCase,
	movementUC *usecase.MovementUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		transferUC: transferUC,
		intakeUC:   intakeUC,
		reversalUC: reversalUC,
		movementUC: movementUC,
	}
}

// Transfer mueve un lote de artículos entre dos tiendas.
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	lines := make([]ledger.TransferLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, ledger.TransferLine{ArticleID: it.ArticleID, Quantity: it.Quantity})
	}
	result, err := h.transferUC.Transfer(c.Context(), ActorFrom(c), req.SourceID, req.TargetID, lines, req.Details)
	if err != nil {
		return writeError(c, err)
	}
	metrics.TransfersTotal.Inc()
	return c.JSON(dto.TransferResponse{MovedCount: result.MovedCount, MovementID: result.MovementID})
}

// Restock reaprovisiona una sucursal desde la central.
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var req dto.RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	lines := make([]ledger.TransferLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, ledger.TransferLine{ArticleID: it.ArticleID, Quantity: it.Quantity})
	}
	result, err := h.transferUC.Restock(c.Context(), ActorFrom(c), req.TargetID, lines)
	if err != nil {
		return writeError(c, err)
	}
	metrics.TransfersTotal.Inc()
	return c.JSON(dto.TransferResponse{MovedCount: result.MovedCount, MovementID: result.MovementID})
}

// Intake ingresa stock de un proveedor hacia la tienda central.
func (h *InventoryHandler) Intake(c *fiber.Ctx) error {
	var req dto.IntakeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	lines := make([]ledger.IntakeLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, ledger.IntakeLine{
			Name:          it.Name,
			Quantity:      it.Quantity,
			PurchasePrice: it.PurchasePrice,
			SalePrice:     it.SalePrice,
		})
	}
	result, err := h.intakeUC.Intake(c.Context(), ActorFrom(c), req.SupplierID, lines)
	if err != nil {
		return writeError(c, err)
	}
	metrics.IntakesTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.IntakeResponse{
		Created:    result.Created,
		Updated:    result.Updated,
		MovementID: result.MovementID,
	})
}

// ListMovements historial del ledger con filtros por query string.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		Kind:    c.Query("kind"),
		StoreID: c.Query("store_id"),
		Limit:   c.QueryInt("limit"),
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
	movements, err := h.movementUC.List(filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movements)
}

// Reverse anula una transferencia o un aprovisionamiento, aplicando la
// operación compensatoria. Devuelve el movimiento compensatorio.
func (h *InventoryHandler) Reverse(c *fiber.Ctx) error {
	comp, err := h.reversalUC.Reverse(c.Context(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	metrics.ReversalsTotal.Inc()
	return c.JSON(usecase.ToMovementResponse(comp))
}
