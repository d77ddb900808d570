package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL. Las
// líneas de venta se guardan como arreglo JSONB en la misma fila: una venta
// es un documento que se lee y escribe completo.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, invoice_no, date, customer_id, customer_name, items, total, created_at`

// Create persiste la venta con su número de factura. El constraint único
// sobre invoice_no corta duplicados si dos transacciones calcularon el mismo.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("marshal sale items: %w", err)
	}
	query := `
		INSERT INTO sales (id, invoice_no, date, customer_id, customer_name, items, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		sale.ID, sale.InvoiceNo, sale.Date, sale.CustomerID, sale.CustomerName,
		items, sale.Total, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Delete elimina una venta del historial.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// LatestInvoiceNo devuelve el mayor invoice_no del día dado, o "" si no hay.
// El orden compara primero el largo: pasadas 999 ventas la secuencia ensancha
// a cuatro dígitos y "-1000" debe ganarle a "-999". Dentro de la transacción
// de venta, con las filas de inventario ya bloqueadas, dos ventas del mismo
// día se serializan antes de llegar aquí.
func (r *SaleRepo) LatestInvoiceNo(datePrefix string) (string, error) {
	query := `SELECT invoice_no FROM sales WHERE invoice_no LIKE $1 || '-%' ORDER BY LENGTH(invoice_no) DESC, invoice_no DESC LIMIT 1`
	var invoiceNo string
	err := r.q.QueryRow(context.Background(), query, datePrefix).Scan(&invoiceNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("latest invoice_no: %w", err)
	}
	return invoiceNo, nil
}

// List devuelve una página keyset ordenada por (invoice_no, id) descendente:
// las ventas más recientes primero.
func (r *SaleRepo) List(afterInvoiceNo, afterID string, limit int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE ($1 = '' AND $2 = '') OR (invoice_no, id) < ($1, $2)
		ORDER BY invoice_no DESC, id DESC
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, afterInvoiceNo, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListByDateRange devuelve las ventas del rango [from, to] inclusive,
// opcionalmente filtradas por cliente, en orden cronológico (reportes).
func (r *SaleRepo) ListByDateRange(from, to time.Time, customerID string) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE date >= $1 AND date <= $2 AND ($3 = '' OR customer_id = $3)
		ORDER BY date, invoice_no`
	rows, err := r.q.Query(context.Background(), query, from, to, customerID)
	if err != nil {
		return nil, fmt.Errorf("list sales by range: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// Count total de ventas.
func (r *SaleRepo) Count() (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM sales`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var sales []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func scanSale(row pgxScanner) (*entity.Sale, error) {
	var (
		s     entity.Sale
		items []byte
	)
	err := row.Scan(
		&s.ID, &s.InvoiceNo, &s.Date, &s.CustomerID, &s.CustomerName,
		&items, &s.Total, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &s.Items); err != nil {
		return nil, fmt.Errorf("unmarshal sale items: %w", err)
	}
	return &s, nil
}
