package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea del borrador de venta. Price es el precio cargado por
// el cliente desde su snapshot de catálogo; si viene en cero se usa el precio
// vigente del producto.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CreateSaleRequest entrada para confirmar una venta. Date y CustomerID son
// obligatorios; sin ellos la venta no valida.
type CreateSaleRequest struct {
	Date       string            `json:"date"` // YYYY-MM-DD
	CustomerID string            `json:"customer_id"`
	Items      []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea persistida con sus instantáneas.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID           string             `json:"id"`
	InvoiceNo    string             `json:"invoice_no"`
	Date         string             `json:"date"`
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	Items        []SaleItemResponse `json:"items"`
	Total        decimal.Decimal    `json:"total"`
	CreatedAt    time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse     `json:"items"`
	Page  CursorPageResponse `json:"page"`
}

// NextInvoiceResponse número de factura que recibiría la próxima venta de la fecha dada.
type NextInvoiceResponse struct {
	InvoiceNo string `json:"invoice_no"`
}
