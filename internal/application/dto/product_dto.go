package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialQuantity siembra
// el registro de inventario en la misma operación.
type CreateProductRequest struct {
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Description     string          `json:"description"`
	AlertLimit      int64           `json:"alert_limit"`
	InitialQuantity int64           `json:"initial_quantity"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil no se tocan.
// Description y AlertLimit están gateados por rol/settings.
type UpdateProductRequest struct {
	SKU         *string          `json:"sku"`
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	AlertLimit  *int64           `json:"alert_limit"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	AlertLimit  int64           `json:"alert_limit"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse  `json:"items"`
	Page  CursorPageResponse `json:"page"`
}
