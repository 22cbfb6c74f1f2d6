package entity

import "time"

// Product es la identidad global de un producto, independiente de la tienda.
// El mismo producto aparece como un Article distinto por cada tienda que lo
// tenga en stock. El nombre es único.
type Product struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
