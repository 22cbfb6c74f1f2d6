package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func seedStore(s *fakeState, id, storeType string) *entity.Store {
	st := &entity.Store{
		ID:        id,
		Name:      "tienda-" + id,
		Type:      storeType,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.stores[id] = st
	return st
}

func seedProduct(s *fakeState, id, name string) *entity.Product {
	p := &entity.Product{ID: id, Name: name, CreatedAt: time.Now()}
	s.products[id] = p
	return p
}

func seedArticle(s *fakeState, id, productID, storeID, name string, qty int64, purchase, sale float64) *entity.Article {
	a := &entity.Article{
		ID:            id,
		ProductID:     productID,
		StoreID:       storeID,
		Name:          name,
		PurchasePrice: decimal.NewFromFloat(purchase),
		SalePrice:     decimal.NewFromFloat(sale),
		Quantity:      qty,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	s.articles[id] = a
	return a
}

func seedSupplier(s *fakeState, id, name string) *entity.Supplier {
	sup := &entity.Supplier{ID: id, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.suppliers[id] = sup
	return sup
}

var (
	admin   = entity.Actor{ID: "admin-1", Role: entity.RoleAdmin}
	gerente = entity.Actor{ID: "gerente-1", Role: entity.RoleGerente, StoreID: "branch-1"}
)
