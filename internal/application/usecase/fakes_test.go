package usecase

import (
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

type memStoreRepo struct {
	stores map[string]*entity.Store
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{stores: map[string]*entity.Store{}}
}

func (r *memStoreRepo) Create(s *entity.Store) error {
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *memStoreRepo) GetByID(id string) (*entity.Store, error) {
	if s, ok := r.stores[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *memStoreRepo) GetCentral() (*entity.Store, error) {
	for _, s := range r.stores {
		if s.IsCentral() {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memStoreRepo) List() ([]*entity.Store, error) {
	var out []*entity.Store
	for _, s := range r.stores {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memStoreRepo) Update(s *entity.Store) error {
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *memStoreRepo) Delete(id string) error {
	delete(r.stores, id)
	return nil
}

type memArticleRepo struct {
	articles map[string]*entity.Article
}

func newMemArticleRepo() *memArticleRepo {
	return &memArticleRepo{articles: map[string]*entity.Article{}}
}

func (r *memArticleRepo) Create(a *entity.Article) error {
	cp := *a
	r.articles[a.ID] = &cp
	return nil
}

func (r *memArticleRepo) GetByID(id string) (*entity.Article, error) {
	if a, ok := r.articles[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *memArticleRepo) GetByIDForUpdate(id string) (*entity.Article, error) {
	return r.GetByID(id)
}

func (r *memArticleRepo) GetByProductAndStore(productID, storeID string) (*entity.Article, error) {
	for _, a := range r.articles {
		if a.ProductID == productID && a.StoreID == storeID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memArticleRepo) GetByProductAndStoreForUpdate(productID, storeID string) (*entity.Article, error) {
	return r.GetByProductAndStore(productID, storeID)
}

func (r *memArticleRepo) Save(a *entity.Article) error {
	cp := *a
	r.articles[a.ID] = &cp
	return nil
}

func (r *memArticleRepo) ListByStore(storeID string) ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range r.articles {
		if a.StoreID == storeID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memArticleRepo) ListAll() ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range r.articles {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memArticleRepo) CountByStore(storeID string) (int, error) {
	n := 0
	for _, a := range r.articles {
		if a.StoreID == storeID {
			n++
		}
	}
	return n, nil
}

func (r *memArticleRepo) Delete(id string) error {
	delete(r.articles, id)
	return nil
}

var _ repository.StoreRepository = (*memStoreRepo)(nil)
var _ repository.ArticleRepository = (*memArticleRepo)(nil)
