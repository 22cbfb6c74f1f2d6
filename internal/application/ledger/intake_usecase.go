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

// defaultMargin margen aplicado sobre el precio de compra cuando el
// aprovisionamiento no trae precio de venta para un artículo nuevo.
var defaultMargin = decimal.NewFromFloat(1.2)

// IntakeLine una línea de aprovisionamiento: el producto se identifica por
// nombre porque puede no existir todavía en el catálogo.
type IntakeLine struct {
	Name          string
	Quantity      int64
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal // cero = usar margen por defecto al crear
}

// IntakeResult resultado del aprovisionamiento.
type IntakeResult struct {
	Created    int
	Updated    int
	MovementID string
}

// IntakeUseCase ingresa stock de un proveedor externo hacia la tienda
// central, única receptora de aprovisionamientos. Todo el lote corre en una
// transacción.
type IntakeUseCase struct {
	txRunner     TxRunner
	storeRepo    repository.StoreRepository
	supplierRepo repository.SupplierRepository
	log          *logger.Logger
}

// NewIntakeUseCase construye el motor de aprovisionamiento.
func NewIntakeUseCase(txRunner TxRunner, storeRepo repository.StoreRepository, supplierRepo repository.SupplierRepository, log *logger.Logger) *IntakeUseCase {
	return &IntakeUseCase{txRunner: txRunner, storeRepo: storeRepo, supplierRepo: supplierRepo, log: log}
}

// Intake procesa el lote línea a línea: crea el producto si no existe en el
// catálogo, y en la central incrementa la cantidad actualizando el precio de
// compra (el de venta solo si viene informado) o crea el artículo nuevo con
// margen por defecto si no trae precio de venta. Las líneas con cantidad no
// positiva se ignoran. Cierra con un único Movement INTAKE hacia la central.
func (uc *IntakeUseCase) Intake(ctx context.Context, actor entity.Actor, supplierID string, lines []IntakeLine) (*IntakeResult, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: la lista de aprovisionamiento está vacía", domain.ErrInvalidOperation)
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, supplierID)
	}
	central, err := uc.storeRepo.GetCentral()
	if err != nil {
		return nil, err
	}
	if central == nil {
		return nil, fmt.Errorf("%w: ninguna tienda central configurada", domain.ErrNotFound)
	}

	now := time.Now()
	result := &IntakeResult{}

	err = uc.txRunner.Run(ctx, func(
		artRepo repository.ArticleRepository,
		prodRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		_ repository.SaleRepository,
	) error {
		ledgerLines := make([]entity.MovementLine, 0, len(lines))
		for _, line := range lines {
			if line.Quantity <= 0 {
				continue
			}
			if line.PurchasePrice.IsNegative() {
				return fmt.Errorf("%w: el precio de compra de %q no puede ser negativo", domain.ErrValidation, line.Name)
			}
			if line.SalePrice.IsPositive() && line.PurchasePrice.GreaterThanOrEqual(line.SalePrice) {
				return fmt.Errorf("%w: para %q el precio de venta debe superar al de compra", domain.ErrValidation, line.Name)
			}
			product, err := prodRepo.GetByName(line.Name)
			if err != nil {
				return err
			}
			if product == nil {
				product = &entity.Product{ID: uuid.New().String(), Name: line.Name, CreatedAt: now}
				if err := prodRepo.Create(product); err != nil {
					return err
				}
			}
			a, err := artRepo.GetByProductAndStoreForUpdate(product.ID, central.ID)
			if err != nil {
				return err
			}
			if a != nil {
				a.Quantity += line.Quantity
				a.PurchasePrice = line.PurchasePrice
				if line.SalePrice.IsPositive() {
					a.SalePrice = line.SalePrice
				} else if a.SalePrice.LessThanOrEqual(line.PurchasePrice) {
					// El nuevo precio de compra alcanzó al de venta vigente:
					// se reajusta con el margen por defecto.
					a.SalePrice = line.PurchasePrice.Mul(defaultMargin)
				}
				a.UpdatedAt = now
				if err := artRepo.Save(a); err != nil {
					return err
				}
				result.Updated++
			} else {
				salePrice := line.SalePrice
				if !salePrice.IsPositive() {
					salePrice = line.PurchasePrice.Mul(defaultMargin)
				}
				a = &entity.Article{
					ID:            uuid.New().String(),
					ProductID:     product.ID,
					StoreID:       central.ID,
					Name:          product.Name,
					PurchasePrice: line.PurchasePrice,
					SalePrice:     salePrice,
					Quantity:      line.Quantity,
					CreatedAt:     now,
					UpdatedAt:     now,
				}
				if err := artRepo.Create(a); err != nil {
					return err
				}
				result.Created++
			}
			ledgerLines = append(ledgerLines, entity.MovementLine{ProductID: product.ID, ProductName: product.Name, Quantity: line.Quantity})
		}
		if len(ledgerLines) == 0 {
			return fmt.Errorf("%w: ninguna línea con cantidad positiva", domain.ErrInvalidInput)
		}
		mov := &entity.Movement{
			ID:            uuid.New().String(),
			Kind:          entity.MovementIntake,
			Details:       "Desde proveedor " + supplier.Name,
			TargetStoreID: &central.ID,
			SupplierID:    &supplierID,
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
