package repository

import "github.com/tu-usuario/pos-inventario/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los listados usan keyset sobre (name, id); afterName/afterID vacíos = página 1.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(afterName, afterID string, limit int) ([]*entity.Product, error)
	Count() (int64, error)
}
