package dto

import "time"

// CreateStoreRequest alta de tienda. Type vacío = sucursal.
type CreateStoreRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Type      string  `json:"type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UpdateStoreRequest modificación parcial de tienda.
type UpdateStoreRequest struct {
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	Active    *bool    `json:"active"`
	Type      *string  `json:"type"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// StoreResponse tienda con conteo de artículos.
type StoreResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Type         string    `json:"type"`
	Active       bool      `json:"active"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	ArticleCount int       `json:"article_count"`
	CreatedAt    time.Time `json:"created_at"`
}
