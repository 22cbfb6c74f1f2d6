package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleGerente = "gerente" // personal de sucursal
)

// User usuario operador del sistema. Un gerente tiene una tienda asignada;
// el admin opera sobre cualquiera.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	StoreID      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor es el descriptor opaco del usuario actuante que reciben los motores
// del ledger. El core nunca autentica: solo autoriza con estos campos.
type Actor struct {
	ID      string
	Role    string
	StoreID string // vacío para admins sin tienda asignada
}

// IsAdmin indica si el actor tiene capacidad de administrador.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
