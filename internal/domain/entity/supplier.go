package entity

import "time"

// Supplier es un proveedor externo. Products es la lista de nombres de
// productos que propone habitualmente.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Products  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
