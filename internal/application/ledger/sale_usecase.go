package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

// CancelWindow ventana dentro de la cual un gerente puede anular una venta.
// Un admin no tiene límite.
const CancelWindow = 24 * time.Hour

// CartLine una línea del carrito de venta.
type CartLine struct {
	ArticleID string
	Quantity  int64
}

// SaleUseCase procesa ventas de carrito contra el stock de una tienda y las
// anula con entradas compensatorias. Cada carrito corre dentro de una única
// transacción con bloqueo de fila (SELECT FOR UPDATE) sobre los artículos.
type SaleUseCase struct {
	txRunner  TxRunner
	storeRepo repository.StoreRepository
	saleRepo  repository.SaleRepository
	notifier  Notifier
	log       *logger.Logger
}

// NewSaleUseCase construye el motor de ventas.
func NewSaleUseCase(
	txRunner TxRunner,
	storeRepo repository.StoreRepository,
	saleRepo repository.SaleRepository,
	notifier Notifier,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:  txRunner,
		storeRepo: storeRepo,
		saleRepo:  saleRepo,
		notifier:  notifier,
		log:       log,
	}
}

// Sell procesa el carrito completo en una transacción, en el orden enviado:
// por línea bloquea el artículo, verifica stock, decrementa, registra la
// Sale y acumula la línea del movimiento. Al final agrega un único Movement
// SALE por todo el carrito. Si cualquier línea falla, nada queda escrito.
// Las alertas de stock bajo se disparan tras el commit y nunca fallan la venta.
func (uc *SaleUseCase) Sell(ctx context.Context, actor entity.Actor, storeID string, items []CartLine) ([]*entity.Sale, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidOperation)
	}
	if storeID == "" {
		return nil, fmt.Errorf("%w: ninguna tienda asociada al vendedor", domain.ErrInvalidOperation)
	}
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, storeID)
	}
	if !actor.IsAdmin() && actor.StoreID != storeID {
		return nil, fmt.Errorf("%w: el gerente solo puede vender en su tienda", domain.ErrForbidden)
	}

	now := time.Now()
	var sales []*entity.Sale
	var alerts []entity.Article

	err = uc.txRunner.Run(ctx, func(
		artRepo repository.ArticleRepository,
		_ repository.ProductRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		lines := make([]entity.MovementLine, 0, len(items))
		for _, it := range items {
			if it.Quantity <= 0 {
				return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
			}
			a, err := artRepo.GetByIDForUpdate(it.ArticleID)
			if err != nil {
				return err
			}
			if a == nil || a.StoreID != storeID {
				return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, it.ArticleID)
			}
			if a.Quantity < it.Quantity {
				return fmt.Errorf("%w: artículo %q, disponible %d, solicitado %d",
					domain.ErrInsufficientStock, a.Name, a.Quantity, it.Quantity)
			}
			a.Quantity -= it.Quantity
			a.UpdatedAt = now
			if err := artRepo.Save(a); err != nil {
				return err
			}
			sale := &entity.Sale{
				ID:         uuid.New().String(),
				ArticleID:  a.ID,
				Quantity:   it.Quantity,
				Total:      a.SalePrice.Mul(decimal.NewFromInt(it.Quantity)),
				OperatorID: actor.ID,
				StoreID:    storeID,
				CreatedAt:  now,
			}
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
			sales = append(sales, sale)
			lines = append(lines, entity.MovementLine{ProductID: a.ProductID, ProductName: a.Name, Quantity: it.Quantity})
			if a.Quantity <= entity.LowStockThreshold {
				alerts = append(alerts, *a)
			}
		}
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			Kind:          entity.MovementSale,
			Details:       fmt.Sprintf("Venta de %d artículo(s)", len(lines)),
			SourceStoreID: &storeID,
			Lines:         lines,
			OperatorID:    actor.ID,
			CreatedAt:     now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}

	// Notificaciones fuera de la transacción: best-effort, nunca fallan la venta.
	for _, a := range alerts {
		if uc.notifier == nil {
			break
		}
		if nerr := uc.notifier.LowStock(ctx, a, *store); nerr != nil {
			uc.log.Warn().Err(nerr).Str("article", a.Name).Msg("alerta de stock bajo fallida")
		}
	}
	return sales, nil
}

// CancelSale anula una venta con una entrada compensatoria: repone la
// cantidad al artículo, marca la venta cancelled y agrega un Movement SALE
// ya marcado cancelled como rastro de auditoría (ese movimiento no es
// anulable a su vez). Un gerente solo dentro de las 24h y sobre su tienda;
// el admin sin límite. Cancelled es terminal: anular dos veces da conflicto.
func (uc *SaleUseCase) CancelSale(ctx context.Context, actor entity.Actor, saleID string) (*entity.Movement, error) {
	var comp *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		artRepo repository.ArticleRepository,
		_ repository.ProductRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, saleID)
		}
		if sale.Cancelled {
			return fmt.Errorf("%w: la venta ya fue anulada", domain.ErrConflict)
		}
		if !actor.IsAdmin() {
			if actor.StoreID != sale.StoreID {
				return fmt.Errorf("%w: la venta pertenece a otra tienda", domain.ErrForbidden)
			}
			if time.Since(sale.CreatedAt) > CancelWindow {
				return fmt.Errorf("%w: ventana de anulación expirada (24h)", domain.ErrForbidden)
			}
		}
		a, err := artRepo.GetByIDForUpdate(sale.ArticleID)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("%w: no se puede anular, el artículo ya no existe", domain.ErrNotFound)
		}
		now := time.Now()
		a.Quantity += sale.Quantity
		a.UpdatedAt = now
		if err := artRepo.Save(a); err != nil {
			return err
		}
		if err := saleRepo.MarkCancelled(sale.ID); err != nil {
			return err
		}
		comp = &entity.Movement{
			ID:            uuid.New().String(),
			Kind:          entity.MovementSale,
			Details:       "ANULACIÓN Venta " + sale.ID,
			SourceStoreID: &sale.StoreID,
			Lines:         []entity.MovementLine{{ProductID: a.ProductID, ProductName: a.Name, Quantity: sale.Quantity}},
			OperatorID:    actor.ID,
			Cancelled:     true,
			CreatedAt:     now,
		}
		return movRepo.Create(comp)
	})
	if err != nil {
		return nil, err
	}
	return comp, nil
}

// ListSales historial de ventas. Un gerente solo ve su tienda; un gerente sin
// tienda asignada no ve nada.
func (uc *SaleUseCase) ListSales(actor entity.Actor, filter repository.SaleFilter) ([]*entity.Sale, error) {
	if !actor.IsAdmin() {
		if actor.StoreID == "" {
			return []*entity.Sale{}, nil
		}
		filter.StoreID = actor.StoreID
	}
	if filter.Limit <= 0 {
		filter.Limit = 200
	}
	return uc.saleRepo.List(filter)
}
