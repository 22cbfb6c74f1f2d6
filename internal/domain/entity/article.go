package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold umbral fijo: al quedar en o bajo esta cantidad tras una
// venta se dispara la alerta de stock bajo.
const LowStockThreshold int64 = 10

// Article es el stock de un producto en una tienda concreta: cantidad y
// precios propios de esa tienda. Unicidad por (product_id, store_id).
type Article struct {
	ID            string
	ProductID     string
	StoreID       string
	Name          string // nombre del producto (join con products)
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Quantity      int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
