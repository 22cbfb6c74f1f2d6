package entity

import "time"

// Kinds de movimiento de stock. Unión cerrada: la anulación despacha por
// switch sobre estas constantes, una función por variante.
const (
	MovementIntake   = "INTAKE"   // aprovisionamiento de proveedor hacia la central
	MovementTransfer = "TRANSFER" // traslado entre tiendas
	MovementSale     = "SALE"     // venta de carrito en una tienda
)

// MovementLine es una línea del movimiento: producto y cantidad afectada.
type MovementLine struct {
	ProductID   string
	ProductName string
	Quantity    int64
}

// Movement es una entrada inmutable del ledger. Nunca se edita salvo para
// marcar Cancelled en una anulación; la compensación es siempre un Movement
// nuevo, ya marcado cancelled, que sirve solo de rastro de auditoría.
type Movement struct {
	ID            string
	Kind          string
	Details       string
	SourceStoreID *string // nil en INTAKE
	TargetStoreID *string // nil en SALE
	SupplierID    *string // solo INTAKE
	Lines         []MovementLine
	OperatorID    string
	Cancelled     bool
	CreatedAt     time.Time
}
