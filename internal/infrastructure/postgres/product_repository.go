package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación PostgreSQL del catálogo global de productos.
type ProductRepo struct {
	q Querier
}

// NewProductRepository crea el repositorio de productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	query := `INSERT INTO products (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, product.ID, product.Name, product.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un producto con ese nombre", domain.ErrConflict)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT id, name, created_at FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT id, name, created_at FROM products WHERE name = $1`, name)
	return scanProduct(row)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}
