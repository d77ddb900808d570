package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `product_id, sku, product_name, quantity, updated_at`

// GetByProductID devuelve el registro o (nil, nil) si no existe.
func (r *InventoryRepo) GetByProductID(productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1`
	return scanInventoryRow(r.q.QueryRow(context.Background(), query, productID), "get inventory")
}

// GetForUpdate bloquea la fila dentro de la transacción vigente. Fuera de una
// transacción el lock se libera de inmediato y no aporta nada.
func (r *InventoryRepo) GetForUpdate(productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 FOR UPDATE`
	return scanInventoryRow(r.q.QueryRow(context.Background(), query, productID), "lock inventory")
}

// Upsert crea o reescribe el registro del producto (semántica merge).
func (r *InventoryRepo) Upsert(rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (product_id, sku, product_name, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id) DO UPDATE
		SET sku = EXCLUDED.sku, product_name = EXCLUDED.product_name,
		    quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		rec.ProductID, rec.SKU, rec.ProductName, rec.Quantity, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// RefreshDenorm reescribe las copias denormalizadas sku/product_name.
func (r *InventoryRepo) RefreshDenorm(productID, sku, productName string) error {
	query := `
		UPDATE inventory SET sku = $2, product_name = $3, updated_at = now()
		WHERE product_id = $1`
	_, err := r.q.Exec(context.Background(), query, productID, sku, productName)
	if err != nil {
		return fmt.Errorf("refresh inventory denorm: %w", err)
	}
	return nil
}

// ListByProductIDs devuelve los registros existentes para el conjunto de productos.
func (r *InventoryRepo) ListByProductIDs(productIDs []string) ([]*entity.InventoryRecord, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var records []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ProductID, &rec.SKU, &rec.ProductName, &rec.Quantity, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func scanInventoryRow(row pgx.Row, op string) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(&rec.ProductID, &rec.SKU, &rec.ProductName, &rec.Quantity, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rec, nil
}
