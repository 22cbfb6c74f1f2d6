package entity

import "time"

// Tipos de tienda. Solo puede existir una tienda central; es la única que
// recibe aprovisionamientos de proveedores.
const (
	StoreTypeCentral = "central"
	StoreTypeBranch  = "sucursal"
)

// Store representa una tienda (central o sucursal) donde vive el stock.
type Store struct {
	ID        string
	Name      string
	Address   string
	Type      string
	Active    bool
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time

	// ArticleCount se rellena en listados (no es columna propia).
	ArticleCount int
}

// IsCentral indica si la tienda es la central.
func (s *Store) IsCentral() bool {
	return s.Type == StoreTypeCentral
}
