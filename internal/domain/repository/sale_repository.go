package repository

import (
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
// El listado pagina por invoice_no descendente (ventas recientes primero).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	Delete(id string) error
	// LatestInvoiceNo devuelve el mayor invoice_no con el prefijo de fecha
	// dado ("20250131"), o "" si no hay facturas de ese día. La consulta se
	// acota al prefijo para que huecos de fechas no desalineen la secuencia.
	LatestInvoiceNo(datePrefix string) (string, error)
	List(afterInvoiceNo, afterID string, limit int) ([]*entity.Sale, error)
	// ListByDateRange devuelve las ventas del rango [from, to] inclusive,
	// opcionalmente filtradas por cliente (reportes).
	ListByDateRange(from, to time.Time, customerID string) ([]*entity.Sale, error)
	Count() (int64, error)
}
