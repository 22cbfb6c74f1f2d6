package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// UserRepository puerto de usuarios. ListAdminEmails alimenta las alertas de
// stock bajo (se notifica a todos los administradores).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ListAdminEmails() ([]string, error)
}
