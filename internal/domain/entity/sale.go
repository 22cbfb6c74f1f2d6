package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una línea de venta individual: se guarda en su propia colección por
// comodidad de reportes, pero pertenece a la misma familia del ledger que
// Movement. Total = cantidad × precio de venta vigente al momento de vender.
type Sale struct {
	ID         string
	ArticleID  string
	Quantity   int64
	Total      decimal.Decimal
	OperatorID string
	StoreID    string
	Cancelled  bool
	CreatedAt  time.Time
}
