package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

func newIntakeEnv() (*fakeState, *IntakeUseCase) {
	s := newFakeState()
	uc := NewIntakeUseCase(&fakeTxRunner{s: s}, &fakeStoreRepo{s: s}, &fakeSupplierRepo{s: s}, testLogger())
	return s, uc
}

func TestIntake_CreaProductosYArticulosEnLaCentral(t *testing.T) {
	s, uc := newIntakeEnv()
	central := seedStore(s, "central-1", entity.StoreTypeCentral)
	seedSupplier(s, "sup-1", "Textiles SA")

	result, err := uc.Intake(context.Background(), admin, "sup-1", []IntakeLine{
		{Name: "Camisa", Quantity: 100, PurchasePrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(15)},
		{Name: "Pantalón", Quantity: 50, PurchasePrice: decimal.NewFromInt(20)}, // sin precio de venta
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)

	camisa := findArticle(s, mustProductID(s, "Camisa"), central.ID)
	require.NotNil(t, camisa)
	assert.Equal(t, int64(100), camisa.Quantity)
	assert.True(t, camisa.SalePrice.Equal(decimal.NewFromInt(15)))

	// Sin precio de venta: margen por defecto ×1.2
	pantalon := findArticle(s, mustProductID(s, "Pantalón"), central.ID)
	require.NotNil(t, pantalon)
	assert.True(t, pantalon.SalePrice.Equal(decimal.NewFromInt(24)))

	mov := s.movements[result.MovementID]
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementIntake, mov.Kind)
	assert.Equal(t, central.ID, *mov.TargetStoreID)
	assert.Equal(t, "sup-1", *mov.SupplierID)
	assert.Nil(t, mov.SourceStoreID)
	assert.Equal(t, "Desde proveedor Textiles SA", mov.Details)
}

func TestIntake_ActualizaArticuloExistente(t *testing.T) {
	s, uc := newIntakeEnv()
	central := seedStore(s, "central-1", entity.StoreTypeCentral)
	seedSupplier(s, "sup-1", "Textiles SA")
	seedProduct(s, "p1", "Camisa")
	seedArticle(s, "a1", "p1", central.ID, "Camisa", 10, 8, 14)

	result, err := uc.Intake(context.Background(), admin, "sup-1", []IntakeLine{
		{Name: "Camisa", Quantity: 40, PurchasePrice: decimal.NewFromInt(9)},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)

	a := s.articles["a1"]
	assert.Equal(t, int64(50), a.Quantity)
	assert.True(t, a.PurchasePrice.Equal(decimal.NewFromInt(9)))
	// Sin precio de venta en la línea: el vigente se conserva
	assert.True(t, a.SalePrice.Equal(decimal.NewFromInt(14)))
}

func TestIntake_CompraSuperaVentaVigenteReajustaConMargen(t *testing.T) {
	s, uc := newIntakeEnv()
	central := seedStore(s, "central-1", entity.StoreTypeCentral)
	seedSupplier(s, "sup-1", "Textiles SA")
	seedProduct(s, "p1", "Camisa")
	seedArticle(s, "a1", "p1", central.ID, "Camisa", 10, 8, 14)

	_, err := uc.Intake(context.Background(), admin, "sup-1", []IntakeLine{
		{Name: "Camisa", Quantity: 10, PurchasePrice: decimal.NewFromInt(20)},
	})
	require.NoError(t, err)

	a := s.articles["a1"]
	assert.True(t, a.PurchasePrice.Equal(decimal.NewFromInt(20)))
	// 20 × 1.2 = 24: la venta nunca queda por debajo de la compra
	assert.True(t, a.SalePrice.Equal(decimal.NewFromInt(24)))
}

func TestIntake_PrecioDeVentaDebeSuperarAlDeCompra(t *testing.T) {
	s, uc := newIntakeEnv()
	seedStore(s, "central-1", entity.StoreTypeCentral)
	seedSupplier(s, "sup-1", "Textiles SA")

	_, err := uc.Intake(context.Background(), admin, "sup-1", []IntakeLine{
		{Name: "Camisa", Quantity: 10, PurchasePrice: decimal.NewFromInt(20), SalePrice: decimal.NewFromInt(15)},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, s.articles)
	assert.Empty(t, s.movements)
}

func TestIntake_IgnoraLineasSinCantidad(t *testing.T) {
	s, uc := newIntakeEnv()
	seedStore(s, "central-1", entity.StoreTypeCentral)
	seedSupplier(s, "sup-1", "Textiles SA")

	result, err := uc.Intake(context.Background(), admin, "sup-1", []IntakeLine{
		{Name: "Camisa", Quantity: 0, PurchasePrice: decimal.NewFromInt(10)},
		{Name: "Pantalón", Quantity: 5, PurchasePrice: decimal.NewFromInt(20), SalePrice: decimal.NewFromInt(30)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	require.Len(t, s.movements, 1)
	assert.Len(t, s.movements[result.MovementID].Lines, 1)
}

func TestIntake_TodasLasLineasSinCantidad(t *testing.T) {
	s, uc := newIntakeEnv()
	seedStore(s, "central-1", entity.StoreTypeCentral)
	seedSupplier(s, "sup-1", "Textiles SA")

	_, err := uc.Intake(context.Background(), admin, "sup-1", []IntakeLine{
		{Name: "Camisa", Quantity: 0, PurchasePrice: decimal.NewFromInt(10)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIntake_ProveedorInexistente(t *testing.T) {
	s, uc := newIntakeEnv()
	seedStore(s, "central-1", entity.StoreTypeCentral)

	_, err := uc.Intake(context.Background(), admin, "no-existe", []IntakeLine{
		{Name: "Camisa", Quantity: 10, PurchasePrice: decimal.NewFromInt(10)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntake_SinCentralConfigurada(t *testing.T) {
	s, uc := newIntakeEnv()
	seedSupplier(s, "sup-1", "Textiles SA")

	_, err := uc.Intake(context.Background(), admin, "sup-1", []IntakeLine{
		{Name: "Camisa", Quantity: 10, PurchasePrice: decimal.NewFromInt(10)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func mustProductID(s *fakeState, name string) string {
	for _, p := range s.products {
		if p.Name == name {
			return p.ID
		}
	}
	return ""
}
