package dto

// CursorPageRequest paginación por cursor para listados.
type CursorPageRequest struct {
	Limit  int    `query:"limit"`
	Cursor string `query:"cursor"`
}

// CursorPageResponse metadatos de página en respuestas paginadas.
// NextCursor es opaco; vacío cuando IsLastPage es true. Total proviene de una
// consulta de conteo independiente de la página.
type CursorPageResponse struct {
	NextCursor string `json:"next_cursor,omitempty"`
	IsLastPage bool   `json:"is_last_page"`
	Total      int64  `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
