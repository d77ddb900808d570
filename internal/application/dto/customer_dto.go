package dto

import "time"

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Credit  int64  `json:"credit"`
}

// UpdateCustomerRequest entrada para actualizar un cliente. Credit aquí es el
// valor absoluto (edición directa); para deltas usar AdjustCreditRequest.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Credit  *int64  `json:"credit"`
}

// AdjustCreditRequest suma un delta (con signo) al crédito del cliente.
type AdjustCreditRequest struct {
	Delta int64 `json:"delta"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Credit    int64     `json:"credit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  CursorPageResponse `json:"page"`
}
