package repository

import "github.com/tu-usuario/pos-inventario/internal/domain/entity"

// InventoryRepository define el puerto de persistencia para InventoryRecord.
// La clave canónica es ProductID; Upsert tiene semántica merge (crea el
// registro en la primera escritura). Los registros nunca se borran.
type InventoryRepository interface {
	// GetByProductID devuelve el registro o (nil, nil) si no existe.
	GetByProductID(productID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la
	// transacción vigente; (nil, nil) si no existe.
	GetForUpdate(productID string) (*entity.InventoryRecord, error)
	Upsert(rec *entity.InventoryRecord) error
	// RefreshDenorm reescribe las copias denormalizadas sku/product_name
	// tras editar el producto.
	RefreshDenorm(productID, sku, productName string) error
	// ListByProductIDs devuelve los registros existentes para el conjunto
	// de productos (join del listado de inventario).
	ListByProductIDs(productIDs []string) ([]*entity.InventoryRecord, error)
}
