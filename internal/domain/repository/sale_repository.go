package repository

import (
	"time"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// SaleFilter filtros del historial de ventas.
type SaleFilter struct {
	StoreID    string
	OperatorID string
	From       *time.Time
	To         *time.Time
	Limit      int
}

// SaleRepository puerto de las ventas. Igual que los movimientos: append-only
// salvo MarkCancelled, que es condicional y devuelve ErrConflict si la venta
// ya estaba anulada.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	MarkCancelled(id string) error
	List(filter SaleFilter) ([]*entity.Sale, error)
}
