package entity

import "time"

// Notification aviso de stock bajo. El estado de lectura se lleva por rol, no
// por usuario: abrir el listado marca como leídas todas las pendientes del rol
// del usuario que lo abre.
type Notification struct {
	ID          string
	Message     string
	Timestamp   time.Time
	AdminRead   bool
	ManagerRead bool
}
