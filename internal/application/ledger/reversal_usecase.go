package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

// ReversalUseCase calcula y aplica la operación compensatoria de un
// movimiento TRANSFER o INTAKE. Las ventas se anulan por SaleUseCase.
// Nunca edita el movimiento original más allá de marcarlo cancelled; la
// compensación es un Movement nuevo ya marcado cancelled, solo de auditoría.
type ReversalUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewReversalUseCase construye el motor de anulación.
func NewReversalUseCase(txRunner TxRunner, log *logger.Logger) *ReversalUseCase {
	return &ReversalUseCase{txRunner: txRunner, log: log}
}

// Reverse despacha por kind del movimiento. Cancelled es terminal: anular dos
// veces da conflicto. Una venta no se anula por aquí.
func (uc *ReversalUseCase) Reverse(ctx context.Context, actor entity.Actor, movementID string) (*entity.Movement, error) {
	var comp *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		artRepo repository.ArticleRepository,
		_ repository.ProductRepository,
		movRepo repository.MovementRepository,
		_ repository.SaleRepository,
	) error {
		mov, err := movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, movementID)
		}
		if mov.Cancelled {
			return fmt.Errorf("%w: el movimiento ya fue anulado", domain.ErrConflict)
		}
		switch mov.Kind {
		case entity.MovementTransfer:
			comp, err = uc.reverseTransfer(artRepo, movRepo, mov, actor)
		case entity.MovementIntake:
			comp, err = uc.reverseIntake(artRepo, movRepo, mov, actor)
		default:
			return fmt.Errorf("%w: este tipo de movimiento no se anula por esta ruta", domain.ErrInvalidOperation)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return comp, nil
}

// reverseTransfer deshace una transferencia: el destino original se vuelve
// origen de la compensación y viceversa. Por línea: decrementa en el destino
// (falla si el artículo ya no existe allí o no alcanza el stock) e incrementa
// en el origen, recreando el artículo con los precios vigentes del destino si
// fue borrado entre tanto.
func (uc *ReversalUseCase) reverseTransfer(
	artRepo repository.ArticleRepository,
	movRepo repository.MovementRepository,
	mov *entity.Movement,
	actor entity.Actor,
) (*entity.Movement, error) {
	sourceID := *mov.SourceStoreID
	targetID := *mov.TargetStoreID
	now := time.Now()

	for _, line := range mov.Lines {
		at, err := artRepo.GetByProductAndStoreForUpdate(line.ProductID, targetID)
		if err != nil {
			return nil, err
		}
		if at == nil {
			return nil, fmt.Errorf("%w: %q ya no existe en la tienda destino", domain.ErrNotFound, line.ProductName)
		}
		if at.Quantity < line.Quantity {
			return nil, fmt.Errorf("%w: %q no tiene stock suficiente para anular (disponible %d)",
				domain.ErrInsufficientStock, line.ProductName, at.Quantity)
		}
		at.Quantity -= line.Quantity
		at.UpdatedAt = now
		if err := artRepo.Save(at); err != nil {
			return nil, err
		}
		as, err := artRepo.GetByProductAndStoreForUpdate(line.ProductID, sourceID)
		if err != nil {
			return nil, err
		}
		if as != nil {
			as.Quantity += line.Quantity
			as.UpdatedAt = now
			if err := artRepo.Save(as); err != nil {
				return nil, err
			}
		} else {
			// Borrado en el origen desde la transferencia: se recrea con los
			// precios vigentes del destino.
			recreated := &entity.Article{
				ID:            uuid.New().String(),
				ProductID:     line.ProductID,
				StoreID:       sourceID,
				Name:          line.ProductName,
				PurchasePrice: at.PurchasePrice,
				SalePrice:     at.SalePrice,
				Quantity:      line.Quantity,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := artRepo.Create(recreated); err != nil {
				return nil, err
			}
		}
	}
	if err := movRepo.MarkCancelled(mov.ID); err != nil {
		return nil, err
	}
	comp := &entity.Movement{
		ID:            uuid.New().String(),
		Kind:          entity.MovementTransfer,
		Details:       "ANULACIÓN Transferencia " + mov.ID,
		SourceStoreID: &targetID,
		TargetStoreID: &sourceID,
		Lines:         mov.Lines,
		OperatorID:    actor.ID,
		Cancelled:     true,
		CreatedAt:     now,
	}
	if err := movRepo.Create(comp); err != nil {
		return nil, err
	}
	return comp, nil
}

// reverseIntake deshace un aprovisionamiento: decrementa cada línea en la
// tienda receptora. La compensación lleva esa tienda como origen (el stock
// sale de ella) y ningún destino.
func (uc *ReversalUseCase) reverseIntake(
	artRepo repository.ArticleRepository,
	movRepo repository.MovementRepository,
	mov *entity.Movement,
	actor entity.Actor,
) (*entity.Movement, error) {
	targetID := *mov.TargetStoreID
	now := time.Now()

	for _, line := range mov.Lines {
		a, err := artRepo.GetByProductAndStoreForUpdate(line.ProductID, targetID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, fmt.Errorf("%w: %q ya no existe en la tienda receptora", domain.ErrNotFound, line.ProductName)
		}
		if a.Quantity < line.Quantity {
			return nil, fmt.Errorf("%w: %q no tiene stock suficiente para anular (disponible %d)",
				domain.ErrInsufficientStock, line.ProductName, a.Quantity)
		}
		a.Quantity -= line.Quantity
		a.UpdatedAt = now
		if err := artRepo.Save(a); err != nil {
			return nil, err
		}
	}
	if err := movRepo.MarkCancelled(mov.ID); err != nil {
		return nil, err
	}
	comp := &entity.Movement{
		ID:            uuid.New().String(),
		Kind:          entity.MovementIntake,
		Details:       "ANULACIÓN Aprovisionamiento " + mov.ID,
		SourceStoreID: &targetID,
		SupplierID:    mov.SupplierID,
		Lines:         mov.Lines,
		OperatorID:    actor.ID,
		Cancelled:     true,
		CreatedAt:     now,
	}
	if err := movRepo.Create(comp); err != nil {
		return nil, err
	}
	return comp, nil
}
