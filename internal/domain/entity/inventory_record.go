package entity

import "time"

// InventoryRecord representa las existencias de un producto (relación 1:1 con
// Product, clave canónica ProductID). SKU y ProductName son copias
// denormalizadas para listar sin join; se refrescan al editar el producto.
// Un producto sin registro de inventario se muestra con cantidad 0.
type InventoryRecord struct {
	ProductID   string
	SKU         string
	ProductName string
	Quantity    int64
	UpdatedAt   time.Time
}
