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

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación PostgreSQL del repositorio de tiendas.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository crea el repositorio de tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, address, type, active, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Address, store.Type, store.Active,
		store.Latitude, store.Longitude, store.CreatedAt, store.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe una tienda con ese nombre", domain.ErrConflict)
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `
		SELECT id, name, address, type, active, latitude, longitude, created_at, updated_at
		FROM stores WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetCentral devuelve la tienda central (a lo sumo una, garantizado por
// índice único parcial).
func (r *StoreRepo) GetCentral() (*entity.Store, error) {
	query := `
		SELECT id, name, address, type, active, latitude, longitude, created_at, updated_at
		FROM stores WHERE type = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, entity.StoreTypeCentral))
}

func (r *StoreRepo) List() ([]*entity.Store, error) {
	query := `
		SELECT id, name, address, type, active, latitude, longitude, created_at, updated_at
		FROM stores ORDER BY type, name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Type, &s.Active,
			&s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, &s)
	}
	return stores, rows.Err()
}

func (r *StoreRepo) Update(store *entity.Store) error {
	query := `
		UPDATE stores
		SET name = $2, address = $3, type = $4, active = $5, latitude = $6, longitude = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Address, store.Type, store.Active,
		store.Latitude, store.Longitude, store.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe una tienda con ese nombre", domain.ErrConflict)
		}
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StoreRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StoreRepo) scanOne(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Type, &s.Active,
		&s.Latitude, &s.Longitude, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan store: %w", err)
	}
	return &s, nil
}
