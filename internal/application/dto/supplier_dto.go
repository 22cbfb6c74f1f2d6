package dto

import "time"

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Products []string `json:"products"`
}

// UpdateSupplierRequest modificación parcial de proveedor.
type UpdateSupplierRequest struct {
	Name     *string   `json:"name"`
	Phone    *string   `json:"phone"`
	Email    *string   `json:"email"`
	Products *[]string `json:"products"`
}

// SupplierResponse proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Products  []string  `json:"products"`
	CreatedAt time.Time `json:"created_at"`
}
