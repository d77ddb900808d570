package dto

// SetQuantityRequest fija la cantidad absoluta de un producto.
type SetQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// IncrementQuantityRequest suma un delta positivo a la cantidad actual.
type IncrementQuantityRequest struct {
	Delta int64 `json:"delta"`
}

// InventoryRowResponse fila del listado de inventario: producto joineado con
// su registro de existencias. Un producto sin registro muestra cantidad 0.
type InventoryRowResponse struct {
	ProductID   string `json:"product_id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	AlertLimit  int64  `json:"alert_limit"`
	LowStock    bool   `json:"low_stock"`
}

// InventoryListResponse lista paginada del inventario.
type InventoryListResponse struct {
	Items []InventoryRowResponse `json:"items"`
	Page  CursorPageResponse     `json:"page"`
}

// QuantityResponse resultado de una mutación de cantidad.
type QuantityResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	LowStock  bool   `json:"low_stock"`
}
