package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

func newSaleEnv() (*fakeState, *SaleUseCase, *fakeNotifier) {
	s := newFakeState()
	notifier := &fakeNotifier{}
	uc := NewSaleUseCase(&fakeTxRunner{s: s}, &fakeStoreRepo{s: s}, &fakeSaleRepo{s: s}, notifier, testLogger())
	return s, uc, notifier
}

func TestSell_DecrementaStockYRegistraLedger(t *testing.T) {
	s, uc, _ := newSaleEnv()
	seedStore(s, "branch-1", entity.StoreTypeBranch)
	seedProduct(s, "p1", "Camisa")
	seedProduct(s, "p2", "Pantalón")
	seedArticle(s, "a1", "p1", "branch-1", "Camisa", 50, 10, 15)
	seedArticle(s, "a2", "p2", "branch-1", "Pantalón", 30, 20, 28)

	sales, err := uc.Sell(context.Background(), gerente, "branch-1", []CartLine{
		{ArticleID: "a1", Quantity: 3},
		{ArticleID: "a2", Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, int64(47), s.articles["a1"].Quantity)
	assert.Equal(t, int64(28), s.articles["a2"].Quantity)
	assert.True(t, sales[0].Total.Equal(decimal.NewFromInt(45)))
	assert.True(t, sales[1].Total.Equal(decimal.NewFromInt(56)))

	// Un único movimiento SALE por todo el carrito
	require.Len(t, s.movements, 1)
	for _, m := range s.movements {
		assert.Equal(t, entity.MovementSale, m.Kind)
		assert.Equal(t, "branch-1", *m.SourceStoreID)
		assert.Nil(t, m.TargetStoreID)
		assert.Len(t, m.Lines, 2)
		assert.False(t, m.Cancelled)
	}
}

func TestSell_CarritoVacio(t *testing.T) {
	_, uc, _ := newSaleEnv()
	_, err := uc.Sell(context.Background(), gerente, "branch-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestSell_StockInsuficienteRevierteTodo(t *testing.T) {
	s, uc, _ := newSaleEnv()
	seedStore(s, "branch-1", entity.StoreTypeBranch)
	seedProduct(s, "p1", "Camisa")
	seedProduct(s, "p2", "Pantalón")
	seedArticle(s, "a1", "p1", "branch-1", "Camisa", 50, 10, 15)
	seedArticle(s, "a2", "p2", "branch-1", "Pantalón", 1, 20, 28)

	_, err := uc.Sell(context.Background(), gerente, "branch-1", []CartLine{
		{ArticleID: "a1", Quantity: 3},
		{ArticleID: "a2", Quantity: 5}, // insuficiente
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La primera línea también se revirtió
	assert.Equal(t, int64(50), s.articles["a1"].Quantity)
	assert.Equal(t, int64(1), s.articles["a2"].Quantity)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.movements)
}

func TestSell_GerenteSoloEnSuTienda(t *testing.T) {
	s, uc, _ := newSaleEnv()
	seedStore(s, "branch-2", entity.StoreTypeBranch)
	seedProduct(s, "p1", "Camisa")
	seedArticle(s, "a1", "p1", "branch-2", "Camisa", 10, 10, 15)

	_, err := uc.Sell(context.Background(), gerente, "branch-2", []CartLine{{ArticleID: "a1", Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSell_AlertaDeStockBajo(t *testing.T) {
	s, uc, notifier := newSaleEnv()
	seedStore(s, "branch-1", entity.StoreTypeBranch)
	seedProduct(s, "p1", "Camisa")
	seedArticle(s, "a1", "p1", "branch-1", "Camisa", 12, 10, 15)

	_, err := uc.Sell(context.Background(), gerente, "branch-1", []CartLine{{ArticleID: "a1", Quantity: 3}})
	require.NoError(t, err)
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, int64(9), notifier.alerts[0].Quantity)
}

func TestSell_ErrorDeNotificacionNoFallaLaVenta(t *testing.T) {
	s, uc, notifier := newSaleEnv()
	notifier.err = assert.AnError
	seedStore(s, "branch-1", entity.StoreTypeBranch)
	seedProduct(s, "p1", "Camisa")
	seedArticle(s, "a1", "p1", "branch-1", "Camisa", 5, 10, 15)

	sales, err := uc.Sell(context.Background(), gerente, "branch-1", []CartLine{{ArticleID: "a1", Quantity: 1}})
	require.NoError(t, err)
	assert.Len(t, sales, 1)
	assert.Equal(t, int64(4), s.articles["a1"].Quantity)
}

func TestCancelSale_ReponeStockYDejaRastro(t *testing.T) {
	s, uc, _ := newSaleEnv()
	seedStore(s, "branch-1", entity.StoreTypeBranch)
	seedProduct(s, "p1", "Camisa")
	seedArticle(s, "a1", "p1", "branch-1", "Camisa", 50, 10, 15)

	sales, err := uc.Sell(context.Background(), gerente, "branch-1", []CartLine{{ArticleID: "a1", Quantity: 4}})
	require.NoError(t, err)
	require.Equal(t, int64(46), s.articles["a1"].Quantity)

	comp, err := uc.CancelSale(context.Background(), gerente, sales[0].ID)
	require.NoError(t, err)

	assert.Equal(t, int64(50), s.articles["a1"].Quantity)
	assert.True(t, s.sales[sales[0].ID].Cancelled)
	assert.Equal(t, entity.MovementSale, comp.Kind)
	assert.True(t, comp.Cancelled)
	assert.Equal(t, "ANULACIÓN Venta "+sales[0].ID, comp.Details)

	// Cancelled es terminal
	_, err = uc.CancelSale(context.Background(), gerente, sales[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancelSale_VentanaExpiradaParaGerente(t *testing.T) {
	s, uc, _ := newSaleEnv()
	seedStore(s, "branch-1", entity.StoreTypeBranch)
	seedProduct(s, "p1", "Camisa")
	seedArticle(s, "a1", "p1", "branch-1", "Camisa", 46, 10, 15)
	s.sales["v1"] = &entity.Sale{
		ID:         "v1",
		ArticleID:  "a1",
		Quantity:   4,
		Total:      decimal.NewFromInt(60),
		OperatorID: gerente.ID,
		StoreID:    "branch-1",
		CreatedAt:  time.Now().Add(-25 * time.Hour),
	}

	_, err := uc.CancelSale(context.Background(), gerente, "v1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El admin no tiene límite de ventana
	comp, err := uc.CancelSale(context.Background(), admin, "v1")
	require.NoError(t, err)
	assert.True(t, comp.Cancelled)
	assert.Equal(t, int64(50), s.articles["a1"].Quantity)
}

// staleSaleRepo entrega lecturas que todavía no ven una anulación concurrente
// de la misma venta; el resto del comportamiento es el del fake normal.
type staleSaleRepo struct{ fakeSaleRepo }

func (r *staleSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, err := r.fakeSaleRepo.GetByID(id)
	if sale != nil {
		sale.Cancelled = false
	}
	return sale, err
}

func TestCancelSale_AnulacionConcurrenteNoReponeDosVeces(t *testing.T) {
	s := newFakeState()
	runner := &fakeTxRunner{s: s, saleRepo: &staleSaleRepo{fakeSaleRepo{s: s}}}
	uc := NewSaleUseCase(runner, &fakeStoreRepo{s: s}, &fakeSaleRepo{s: s}, &fakeNotifier{}, testLogger())
	seedStore(s, "branch-1", entity.StoreTypeBranch)
	seedProduct(s, "p1", "Camisa")
	seedArticle(s, "a1", "p1", "branch-1", "Camisa", 50, 10, 15)
	// Otra sesión ya anuló la venta, pero esta lectura no lo ve: la marca
	// condicional es la que debe frenar la segunda anulación.
	s.sales["v1"] = &entity.Sale{
		ID:         "v1",
		ArticleID:  "a1",
		Quantity:   4,
		Total:      decimal.NewFromInt(60),
		OperatorID: gerente.ID,
		StoreID:    "branch-1",
		Cancelled:  true,
		CreatedAt:  time.Now(),
	}

	_, err := uc.CancelSale(context.Background(), gerente, "v1")
	require.ErrorIs(t, err, domain.ErrConflict)

	// El rollback descartó la reposición de stock: sin doble reintegro
	assert.Equal(t, int64(50), s.articles["a1"].Quantity)
	assert.Empty(t, s.movements)
}

func TestListSales_GerenteSoloVeSuTienda(t *testing.T) {
	s, uc, _ := newSaleEnv()
	s.sales["v1"] = &entity.Sale{ID: "v1", StoreID: "branch-1", CreatedAt: time.Now()}
	s.sales["v2"] = &entity.Sale{ID: "v2", StoreID: "branch-2", CreatedAt: time.Now()}

	mine, err := uc.ListSales(gerente, repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "v1", mine[0].ID)

	all, err := uc.ListSales(admin, repository.SaleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
