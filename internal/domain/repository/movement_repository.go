package repository

import (
	"time"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	Kind    string
	StoreID string // coincide contra tienda origen o destino
	From    *time.Time
	To      *time.Time
	Limit   int
}

// MovementRepository puerto del ledger append-only. Create persiste el
// movimiento con sus líneas; MarkCancelled es la única mutación permitida
// sobre un movimiento existente, es condicional y devuelve ErrConflict si el
// movimiento ya estaba anulado.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	MarkCancelled(id string) error
	List(filter MovementFilter) ([]*entity.Movement, error)
}
