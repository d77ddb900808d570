package pagination

// PageCache guarda un cursor por cada página visitada hacia adelante.
// El almacén solo ofrece "start after": para volver a una página anterior hay
// que descartar los cursores desde esa posición y re-derivarlos desde la
// página 1 si se vuelve a avanzar.
//
// Reglas:
//   - el cursor para pedir la página N es el último documento de la página N-1;
//   - navegar hacia atrás a la página P invalida los cursores en posiciones >= P;
//   - cambiar el tamaño de página descarta todos los cursores y vuelve a la página 1.
type PageCache struct {
	pageSize int
	current  int
	cursors  map[int]string // página -> cursor de su último documento
}

// NewPageCache construye la caché posicionada en la página 1.
func NewPageCache(pageSize int) *PageCache {
	return &PageCache{
		pageSize: ClampSize(pageSize),
		current:  1,
		cursors:  make(map[int]string),
	}
}

// PageSize devuelve el tamaño de página vigente.
func (pc *PageCache) PageSize() int { return pc.pageSize }

// Current devuelve la página actual.
func (pc *PageCache) Current() int { return pc.current }

// StartAfter devuelve el cursor con el que pedir la página actual
// (vacío para la página 1 o si el cursor previo no está cacheado).
func (pc *PageCache) StartAfter() string {
	if pc.current <= 1 {
		return ""
	}
	return pc.cursors[pc.current-1]
}

// Remember registra el cursor del último documento de la página actual.
func (pc *PageCache) Remember(cursor string) {
	if cursor == "" {
		return
	}
	pc.cursors[pc.current] = cursor
}

// Navigate mueve la posición a la página dada. Al retroceder se descartan los
// cursores en posiciones >= la página destino para forzar datos frescos.
func (pc *PageCache) Navigate(page int) {
	if page < 1 {
		page = 1
	}
	if page < pc.current {
		for p := range pc.cursors {
			if p >= page {
				delete(pc.cursors, p)
			}
		}
	}
	pc.current = page
}

// SetPageSize cambia el tamaño de página: descarta todos los cursores y
// reposiciona en la página 1.
func (pc *PageCache) SetPageSize(n int) {
	pc.pageSize = ClampSize(n)
	pc.current = 1
	pc.cursors = make(map[int]string)
}
