package catalog

import (
	"context"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios ligados a
// ella. El commit ocurre solo si fn devuelve nil.
type TxRunner interface {
	Run(ctx context.Context, fn func(productRepo repository.ProductRepository, invRepo repository.InventoryRepository) error) error
}

// AlertNotifier evalúa stock bajo tras confirmar una escritura.
type AlertNotifier interface {
	LowStock(product *entity.Product, remaining int64)
}

type settingsProvider interface {
	Get() (*entity.Settings, error)
}
