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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación PostgreSQL de usuarios.
type UserRepo struct {
	q Querier
}

// NewUserRepository crea el repositorio de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, store_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.Role, user.StoreID, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	row := r.q.QueryRow(context.Background(), `
		SELECT id, name, email, password_hash, role, store_id, created_at, updated_at
		FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	row := r.q.QueryRow(context.Background(), `
		SELECT id, name, email, password_hash, role, store_id, created_at, updated_at
		FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// ListAdminEmails devuelve los correos de todos los administradores, para
// las alertas de stock bajo.
func (r *UserRepo) ListAdminEmails() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT email FROM users WHERE role = $1`, entity.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("list admin emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Role, &u.StoreID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
