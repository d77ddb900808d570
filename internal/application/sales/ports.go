package sales

import (
	"context"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los tres repositorios que toca
// la confirmación de venta ligados a ella.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockDecrementer descuenta existencias con la fila bloqueada dentro de la
// transacción del caller. Devuelve la cantidad resultante.
type StockDecrementer interface {
	DecrementForSaleTx(invRepo repository.InventoryRepository, product *entity.Product, quantity int64) (int64, error)
}

// AlertNotifier evalúa stock bajo tras confirmar la venta.
type AlertNotifier interface {
	LowStock(product *entity.Product, remaining int64)
}

type settingsProvider interface {
	Get() (*entity.Settings, error)
}
