package repository

import "github.com/tu-usuario/pos-inventario/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
// El listado pagina por (role, id) como el panel de administración.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	UpdateRole(id, role string) error
	UpdatePassword(id, passwordHash string) error
	List(afterRole, afterID string, limit int) ([]*entity.User, error)
	Count() (int64, error)
}
