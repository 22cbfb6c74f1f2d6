package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateArticleRequest edición administrativa de un artículo: solo precios.
// La cantidad únicamente cambia por venta, transferencia, aprovisionamiento
// o anulación.
type UpdateArticleRequest struct {
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
}

// ArticleResponse artículo (stock de un producto en una tienda).
type ArticleResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	StoreID       string          `json:"store_id"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Quantity      int64           `json:"quantity"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
