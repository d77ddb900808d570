package entity

import "time"

// Customer representa un cliente con su crédito acumulado. El crédito se
// ajusta solo con operaciones explícitas (delta o valor absoluto); una venta
// referencia al cliente pero no toca su crédito.
type Customer struct {
	ID        string
	Name      string
	Company   string
	Credit    int64 // entero con signo, default 0
	CreatedAt time.Time
	UpdatedAt time.Time
}
