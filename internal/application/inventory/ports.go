package inventory

import (
	"context"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que una mutación de cantidad y sus
// lecturas con bloqueo ocurran como una unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
	) error) error
}

// AlertNotifier recibe la cantidad resultante de cada mutación y decide si
// emite la alerta de stock bajo. Lo implementa notification.Pipeline.
type AlertNotifier interface {
	LowStock(product *entity.Product, remaining int64)
}

// settingsProvider interfaz mínima sobre *settings.Service.
type settingsProvider interface {
	Get() (*entity.Settings, error)
}
