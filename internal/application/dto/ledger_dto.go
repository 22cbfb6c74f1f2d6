package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem línea del carrito de venta.
type CartItem struct {
	ArticleID string `json:"article_id"`
	Quantity  int64  `json:"quantity"`
}

// SaleRequest venta de carrito. StoreID solo lo usa el admin; un gerente
// siempre vende en su tienda.
type SaleRequest struct {
	StoreID string     `json:"store_id"`
	Items   []CartItem `json:"items"`
}

// SaleResponse una línea de venta registrada.
type SaleResponse struct {
	ID         string          `json:"id"`
	ArticleID  string          `json:"article_id"`
	Quantity   int64           `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
	OperatorID string          `json:"operator_id"`
	StoreID    string          `json:"store_id"`
	Cancelled  bool            `json:"cancelled"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TransferItem línea de transferencia entre tiendas.
type TransferItem struct {
	ArticleID string `json:"article_id"`
	Quantity  int64  `json:"quantity"`
}

// TransferRequest transferencia de stock entre dos tiendas.
type TransferRequest struct {
	SourceID string         `json:"source_id"`
	TargetID string         `json:"target_id"`
	Items    []TransferItem `json:"items"`
	Details  string         `json:"details"`
}

// RestockRequest reaprovisionamiento de una sucursal desde la central.
type RestockRequest struct {
	TargetID string         `json:"target_id"`
	Items    []TransferItem `json:"items"`
}

// TransferResponse resultado de transferencia/reaprovisionamiento.
type TransferResponse struct {
	MovedCount int    `json:"moved_count"`
	MovementID string `json:"movement_id,omitempty"`
}

// IntakeItem línea de aprovisionamiento desde proveedor.
type IntakeItem struct {
	Name          string          `json:"name"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

// IntakeRequest aprovisionamiento hacia la tienda central.
type IntakeRequest struct {
	SupplierID string       `json:"supplier_id"`
	Items      []IntakeItem `json:"items"`
}

// IntakeResponse resultado del aprovisionamiento.
type IntakeResponse struct {
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	MovementID string `json:"movement_id"`
}

// MovementLineResponse línea de un movimiento del ledger.
type MovementLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// MovementResponse entrada del ledger de movimientos.
type MovementResponse struct {
	ID            string                 `json:"id"`
	Kind          string                 `json:"kind"`
	Details       string                 `json:"details"`
	SourceStoreID *string                `json:"source_store_id,omitempty"`
	TargetStoreID *string                `json:"target_store_id,omitempty"`
	SupplierID    *string                `json:"supplier_id,omitempty"`
	Lines         []MovementLineResponse `json:"lines"`
	OperatorID    string                 `json:"operator_id"`
	Cancelled     bool                   `json:"cancelled"`
	CreatedAt     time.Time              `json:"created_at"`
}
