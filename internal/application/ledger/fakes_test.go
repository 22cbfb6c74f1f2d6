package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// fakeState es el almacén en memoria compartido por los repos fake.
type fakeState struct {
	mu        sync.Mutex
	stores    map[string]*entity.Store
	products  map[string]*entity.Product
	articles  map[string]*entity.Article
	movements map[string]*entity.Movement
	sales     map[string]*entity.Sale
	suppliers map[string]*entity.Supplier
}

func newFakeState() *fakeState {
	return &fakeState{
		stores:    map[string]*entity.Store{},
		products:  map[string]*entity.Product{},
		articles:  map[string]*entity.Article{},
		movements: map[string]*entity.Movement{},
		sales:     map[string]*entity.Sale{},
		suppliers: map[string]*entity.Supplier{},
	}
}

func (s *fakeState) snapshot() *fakeState {
	c := newFakeState()
	for k, v := range s.stores {
		cp := *v
		c.stores[k] = &cp
	}
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.articles {
		cp := *v
		c.articles[k] = &cp
	}
	for k, v := range s.movements {
		cp := *v
		cp.Lines = append([]entity.MovementLine(nil), v.Lines...)
		c.movements[k] = &cp
	}
	for k, v := range s.sales {
		cp := *v
		c.sales[k] = &cp
	}
	for k, v := range s.suppliers {
		cp := *v
		cp.Products = append([]string(nil), v.Products...)
		c.suppliers[k] = &cp
	}
	return c
}

func (s *fakeState) restore(snap *fakeState) {
	s.stores = snap.stores
	s.products = snap.products
	s.articles = snap.articles
	s.movements = snap.movements
	s.sales = snap.sales
	s.suppliers = snap.suppliers
}

// fakeTxRunner emula el todo-o-nada: toma una instantánea del estado y la
// restaura si el callback falla. Los campos movRepo/saleRepo permiten a un
// test sustituir el repo entregado al callback.
type fakeTxRunner struct {
	s        *fakeState
	movRepo  repository.MovementRepository
	saleRepo repository.SaleRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	artRepo repository.ArticleRepository,
	prodRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	movRepo := r.movRepo
	if movRepo == nil {
		movRepo = &fakeMovementRepo{s: r.s}
	}
	saleRepo := r.saleRepo
	if saleRepo == nil {
		saleRepo = &fakeSaleRepo{s: r.s}
	}
	err := fn(&fakeArticleRepo{s: r.s}, &fakeProductRepo{s: r.s}, movRepo, saleRepo)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

type fakeStoreRepo struct{ s *fakeState }

func (r *fakeStoreRepo) Create(store *entity.Store) error {
	cp := *store
	r.s.stores[store.ID] = &cp
	return nil
}

func (r *fakeStoreRepo) GetByID(id string) (*entity.Store, error) {
	if st, ok := r.s.stores[id]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeStoreRepo) GetCentral() (*entity.Store, error) {
	for _, st := range r.s.stores {
		if st.IsCentral() {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStoreRepo) List() ([]*entity.Store, error) {
	var out []*entity.Store
	for _, st := range r.s.stores {
		cp := *st
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStoreRepo) Update(store *entity.Store) error {
	cp := *store
	r.s.stores[store.ID] = &cp
	return nil
}

func (r *fakeStoreRepo) Delete(id string) error {
	delete(r.s.stores, id)
	return nil
}

type fakeProductRepo struct{ s *fakeState }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeArticleRepo struct{ s *fakeState }

func (r *fakeArticleRepo) Create(a *entity.Article) error {
	cp := *a
	r.s.articles[a.ID] = &cp
	return nil
}

func (r *fakeArticleRepo) GetByID(id string) (*entity.Article, error) {
	if a, ok := r.s.articles[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeArticleRepo) GetByIDForUpdate(id string) (*entity.Article, error) {
	return r.GetByID(id)
}

func (r *fakeArticleRepo) GetByProductAndStore(productID, storeID string) (*entity.Article, error) {
	for _, a := range r.s.articles {
		if a.ProductID == productID && a.StoreID == storeID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeArticleRepo) GetByProductAndStoreForUpdate(productID, storeID string) (*entity.Article, error) {
	return r.GetByProductAndStore(productID, storeID)
}

func (r *fakeArticleRepo) Save(a *entity.Article) error {
	cp := *a
	r.s.articles[a.ID] = &cp
	return nil
}

func (r *fakeArticleRepo) ListByStore(storeID string) ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range r.s.articles {
		if a.StoreID == storeID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) ListAll() ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range r.s.articles {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeArticleRepo) CountByStore(storeID string) (int, error) {
	n := 0
	for _, a := range r.s.articles {
		if a.StoreID == storeID {
			n++
		}
	}
	return n, nil
}

func (r *fakeArticleRepo) Delete(id string) error {
	delete(r.s.articles, id)
	return nil
}

type fakeMovementRepo struct{ s *fakeState }

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	cp.Lines = append([]entity.MovementLine(nil), m.Lines...)
	r.s.movements[m.ID] = &cp
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	if m, ok := r.s.movements[id]; ok {
		cp := *m
		cp.Lines = append([]entity.MovementLine(nil), m.Lines...)
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMovementRepo) MarkCancelled(id string) error {
	m, ok := r.s.movements[id]
	if !ok || m.Cancelled {
		return fmt.Errorf("%w: el movimiento ya fue anulado", domain.ErrConflict)
	}
	m.Cancelled = true
	return nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if filter.Kind != "" && m.Kind != filter.Kind {
			continue
		}
		if filter.StoreID != "" {
			matches := (m.SourceStoreID != nil && *m.SourceStoreID == filter.StoreID) ||
				(m.TargetStoreID != nil && *m.TargetStoreID == filter.StoreID)
			if !matches {
				continue
			}
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		cp := *m
		cp.Lines = append([]entity.MovementLine(nil), m.Lines...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type fakeSaleRepo struct{ s *fakeState }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	if s, ok := r.s.sales[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSaleRepo) MarkCancelled(id string) error {
	s, ok := r.s.sales[id]
	if !ok || s.Cancelled {
		return fmt.Errorf("%w: la venta ya fue anulada", domain.ErrConflict)
	}
	s.Cancelled = true
	return nil
}

func (r *fakeSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if filter.StoreID != "" && s.StoreID != filter.StoreID {
			continue
		}
		if filter.OperatorID != "" && s.OperatorID != filter.OperatorID {
			continue
		}
		if filter.From != nil && s.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.CreatedAt.After(*filter.To) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type fakeSupplierRepo struct{ s *fakeState }

func (r *fakeSupplierRepo) Create(sup *entity.Supplier) error {
	cp := *sup
	r.s.suppliers[sup.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if sup, ok := r.s.suppliers[id]; ok {
		cp := *sup
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSupplierRepo) List() ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sup := range r.s.suppliers {
		cp := *sup
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSupplierRepo) Update(sup *entity.Supplier) error {
	cp := *sup
	r.s.suppliers[sup.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) Delete(id string) error {
	delete(r.s.suppliers, id)
	return nil
}

// fakeNotifier registra las alertas de stock bajo recibidas.
type fakeNotifier struct {
	alerts []entity.Article
	err    error
}

func (n *fakeNotifier) LowStock(_ context.Context, article entity.Article, _ entity.Store) error {
	n.alerts = append(n.alerts, article)
	return n.err
}
