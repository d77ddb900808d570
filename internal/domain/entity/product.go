package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultAlertLimit umbral de alerta cuando el producto no define uno.
const DefaultAlertLimit = 5

// Product representa un producto del catálogo. El SKU es un campo de
// búsqueda/visualización con unicidad garantizada por constraint; la identidad
// canónica para todos los joins es ID.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Price       decimal.Decimal
	Description string
	AlertLimit  int64 // cantidad por debajo de la cual se dispara la alerta de stock bajo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
