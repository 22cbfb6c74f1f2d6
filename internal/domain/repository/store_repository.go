package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// StoreRepository puerto de persistencia de tiendas.
// GetCentral es O(1) gracias al índice parcial sobre type='central'.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	GetCentral() (*entity.Store, error)
	List() ([]*entity.Store, error)
	Update(store *entity.Store) error
	Delete(id string) error
}
