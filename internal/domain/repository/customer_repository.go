package repository

import "github.com/tu-usuario/pos-inventario/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
	// AdjustCredit suma delta (con signo) al crédito y devuelve el saldo resultante.
	AdjustCredit(id string, delta int64) (int64, error)
	List(afterName, afterID string, limit int) ([]*entity.Customer, error)
	Count() (int64, error)
}
