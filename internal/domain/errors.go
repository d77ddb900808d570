package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrValidation        = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrPermission        = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StockShortage detalla un rechazo de venta por falta de existencias:
// qué producto, cuánto hay y cuánto se pidió. errors.Is(err, ErrInsufficientStock)
// es verdadero para este error.
type StockShortage struct {
	ProductID   string
	ProductName string
	Available   int64
	Requested   int64
}

func (e *StockShortage) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *StockShortage) Unwrap() error { return ErrInsufficientStock }
