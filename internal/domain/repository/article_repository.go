package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// ArticleRepository puerto del stock por tienda. Las variantes ForUpdate
// bloquean la fila (SELECT FOR UPDATE) y deben usarse dentro de una
// transacción para serializar los decrementos de cantidad.
type ArticleRepository interface {
	Create(article *entity.Article) error
	GetByID(id string) (*entity.Article, error)
	GetByIDForUpdate(id string) (*entity.Article, error)
	GetByProductAndStore(productID, storeID string) (*entity.Article, error)
	GetByProductAndStoreForUpdate(productID, storeID string) (*entity.Article, error)
	// Save persiste cantidad y precios de un artículo existente.
	Save(article *entity.Article) error
	ListByStore(storeID string) ([]*entity.Article, error)
	ListAll() ([]*entity.Article, error)
	CountByStore(storeID string) (int, error)
	Delete(id string) error
}
