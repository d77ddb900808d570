// Package pagination implementa el esquema de paginación por cursor usado en
// todos los listados: el cursor es una referencia opaca al último documento de
// la página anterior (clave de ordenamiento + id), y el conteo total se obtiene
// con una consulta independiente.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Cursor referencia al último elemento devuelto por la página anterior.
// Key es el valor del campo de ordenamiento; ID desempata claves repetidas.
type Cursor struct {
	Key string `json:"k"`
	ID  string `json:"id"`
}

// Encode serializa el cursor como token opaco (base64url de JSON).
func (c Cursor) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode reconstruye un cursor desde su token opaco. Token vacío = sin cursor (página 1).
func Decode(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("cursor inválido: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("cursor inválido: %w", err)
	}
	return &c, nil
}

// Page resultado de una consulta paginada.
type Page struct {
	NextCursor string `json:"next_cursor,omitempty"`
	IsLastPage bool   `json:"is_last_page"`
	Total      int64  `json:"total,omitempty"`
}

// Límites de página por defecto.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ClampSize normaliza un tamaño de página pedido por el cliente.
func ClampSize(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}
