package dto

// SalesReportRequest parámetros del reporte PDF de ventas.
type SalesReportRequest struct {
	From       string `query:"from"` // YYYY-MM-DD
	To         string `query:"to"`   // YYYY-MM-DD
	CustomerID string `query:"customer_id"`
	ShowPrices bool   `query:"show_prices"`
}
