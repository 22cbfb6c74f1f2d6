package ledger

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza el todo-o-nada por carrito/lote:
// si una línea falla, ningún decremento ni registro de esa operación queda
// visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		artRepo repository.ArticleRepository,
		prodRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// Notifier es el sink de notificaciones de stock bajo. Best-effort: el caller
// loguea y traga cualquier error; un fallo de notificación jamás falla la
// operación que la originó.
type Notifier interface {
	LowStock(ctx context.Context, article entity.Article, store entity.Store) error
}
