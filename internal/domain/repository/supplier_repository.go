package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// SupplierRepository puerto de proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
}
