package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación PostgreSQL de las ventas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository crea el repositorio de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, article_id, quantity, total, operator_id, store_id, cancelled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ArticleID, sale.Quantity, sale.Total,
		sale.OperatorID, sale.StoreID, sale.Cancelled, sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, article_id, quantity, total, operator_id, store_id, cancelled, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ArticleID, &s.Quantity, &s.Total,
		&s.OperatorID, &s.StoreID, &s.Cancelled, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	return &s, nil
}

// MarkCancelled anula la venta de forma condicional: el WHERE sobre el flag
// serializa la transición Active -> Cancelled en la fila, así dos
// anulaciones concurrentes no pueden reponer el stock dos veces.
func (r *SaleRepo) MarkCancelled(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE sales SET cancelled = true WHERE id = $1 AND NOT cancelled`, id)
	if err != nil {
		return fmt.Errorf("cancel sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: la venta ya fue anulada", domain.ErrConflict)
	}
	return nil
}

func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.StoreID != "" {
		conditions = append(conditions, "store_id = "+arg(filter.StoreID))
	}
	if filter.OperatorID != "" {
		conditions = append(conditions, "operator_id = "+arg(filter.OperatorID))
	}
	if filter.From != nil {
		conditions = append(conditions, "created_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "created_at <= "+arg(*filter.To))
	}

	query := `
		SELECT id, article_id, quantity, total, operator_id, store_id, cancelled, created_at
		FROM sales`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ArticleID, &s.Quantity, &s.Total,
			&s.OperatorID, &s.StoreID, &s.Cancelled, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}
