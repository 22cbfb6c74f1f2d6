package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// ProductRepository puerto del catálogo global de productos (identidad por
// nombre único, independiente de la tienda).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
}
