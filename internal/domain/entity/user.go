package entity

import "time"

// Roles válidos para User. Un usuario sin rol almacenado se trata como manager.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin | manager
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeRole aplica el default manager a roles vacíos o desconocidos.
func NormalizeRole(role string) string {
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RoleManager
}
