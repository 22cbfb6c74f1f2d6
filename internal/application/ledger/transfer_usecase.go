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

// TransferLine una línea del lote a transferir.
type TransferLine struct {
	ArticleID string
	Quantity  int64
}

// TransferResult resultado de una transferencia.
type TransferResult struct {
	MovedCount int
	MovementID string
}

// TransferUseCase mueve stock entre tiendas. El reaprovisionamiento de
// sucursales es la misma primitiva con la central forzada como origen, no un
// algoritmo aparte. Todo el lote corre en una transacción.
type TransferUseCase struct {
	txRunner  TxRunner
	storeRepo repository.StoreRepository
	log       *logger.Logger
}

// NewTransferUseCase construye el motor de transferencias.
func NewTransferUseCase(txRunner TxRunner, storeRepo repository.StoreRepository, log *logger.Logger) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, storeRepo: storeRepo, log: log}
}

// Transfer mueve las líneas de la tienda origen a la destino, en el orden
// enviado. Regla de jerarquía: sacar stock de la central exige capacidad de
// administrador. Por línea: el artículo se bloquea (FOR UPDATE); si ya no
// pertenece al origen se salta en silencio (estado obsoleto del cliente); si
// el destino ya tiene el producto se incrementa su cantidad sin tocar sus
// precios; si no, se clona el artículo (precios incluidos) con la cantidad
// transferida. Al final se agrega un único Movement TRANSFER por el lote.
func (uc *TransferUseCase) Transfer(ctx context.Context, actor entity.Actor, sourceID, targetID string, lines []TransferLine, details string) (*TransferResult, error) {
	if sourceID == targetID {
		return nil, fmt.Errorf("%w: las tiendas origen y destino deben ser distintas", domain.ErrInvalidOperation)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: sin líneas a transferir", domain.ErrInvalidInput)
	}
	source, err := uc.storeRepo.GetByID(sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: tienda origen %s", domain.ErrNotFound, sourceID)
	}
	target, err := uc.storeRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: tienda destino %s", domain.ErrNotFound, targetID)
	}
	if source.IsCentral() && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede sacar stock de la central", domain.ErrForbidden)
	}

	now := time.Now()
	result := &TransferResult{}

	err = uc.txRunner.Run(ctx, func(
		artRepo repository.ArticleRepository,
		_ repository.ProductRepository,
		movRepo repository.MovementRepository,
		_ repository.SaleRepository,
	) error {
		ledgerLines := make([]entity.MovementLine, 0, len(lines))
		for _, line := range lines {
			if line.Quantity <= 0 {
				return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
			}
			a, err := artRepo.GetByIDForUpdate(line.ArticleID)
			if err != nil {
				return err
			}
			if a == nil || a.StoreID != sourceID {
				// Estado obsoleto del cliente: la línea se ignora.
				continue
			}
			if a.Quantity < line.Quantity {
				return fmt.Errorf("%w: artículo %q, disponible %d, solicitado %d",
					domain.ErrInsufficientStock, a.Name, a.Quantity, line.Quantity)
			}
			dest, err := artRepo.GetByProductAndStoreForUpdate(a.ProductID, targetID)
			if err != nil {
				return err
			}
			if dest != nil {
				dest.Quantity += line.Quantity
				dest.UpdatedAt = now
				if err := artRepo.Save(dest); err != nil {
					return err
				}
			} else {
				clone := &entity.Article{
					ID:            uuid.New().String(),
					ProductID:     a.ProductID,
					StoreID:       targetID,
					Name:          a.Name,
					PurchasePrice: a.PurchasePrice,
					SalePrice:     a.SalePrice,
					Quantity:      line.Quantity,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				if err := artRepo.Create(clone); err != nil {
					return err
				}
			}
			a.Quantity -= line.Quantity
			a.UpdatedAt = now
			if err := artRepo.Save(a); err != nil {
				return err
			}
			ledgerLines = append(ledgerLines, entity.MovementLine{ProductID: a.ProductID, ProductName: a.Name, Quantity: line.Quantity})
			result.MovedCount++
		}
		if len(ledgerLines) == 0 {
			// Todas las líneas eran obsoletas: no hubo cambio de stock, no se
			// registra movimiento.
			return nil
		}
		if details == "" {
			details = "Transferencia entre tiendas"
		}
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			Kind:          entity.MovementTransfer,
			Details:       details,
			SourceStoreID: &sourceID,
			TargetStoreID: &targetID,
			Lines:         ledgerLines,
			OperatorID:    actor.ID,
			CreatedAt:     now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		result.MovementID = mov.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Restock reaprovisiona una sucursal desde la central: misma primitiva
// Transfer con el origen forzado a la central vigente. La regla de jerarquía
// de Transfer hace que solo un administrador pueda ejecutarlo.
func (uc *TransferUseCase) Restock(ctx context.Context, actor entity.Actor, targetID string, lines []TransferLine) (*TransferResult, error) {
	target, err := uc.storeRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: tienda destino %s", domain.ErrNotFound, targetID)
	}
	if target.IsCentral() {
		return nil, fmt.Errorf("%w: la destinataria debe ser una sucursal", domain.ErrInvalidOperation)
	}
	central, err := uc.storeRepo.GetCentral()
	if err != nil {
		return nil, err
	}
	if central == nil {
		return nil, fmt.Errorf("%w: ninguna tienda central configurada", domain.ErrNotFound)
	}
	return uc.Transfer(ctx, actor, central.ID, targetID, lines, "Reaprovisionamiento desde la central")
}
