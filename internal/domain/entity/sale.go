package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem línea de una venta. ProductName y Price son instantáneas al momento
// de la venta; borrar o editar el producto después no las altera.
// Los tags json definen el formato del arreglo items persistido como JSONB.
type SaleItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// Sale representa una factura de venta. InvoiceNo tiene el formato
// YYYYMMDD-NNN con secuencia por día. Borrar una venta no restaura inventario.
type Sale struct {
	ID           string
	InvoiceNo    string
	Date         time.Time
	CustomerID   string
	CustomerName string // instantánea del nombre del cliente
	Items        []SaleItem
	Total        decimal.Decimal
	CreatedAt    time.Time
}
