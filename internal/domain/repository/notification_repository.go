package repository

import (
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification.
// El listado pagina por timestamp descendente.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	List(afterTimestamp, afterID string, limit int) ([]*entity.Notification, error)
	// MarkAllRead marca como leídas las pendientes del rol dado sin tocar la
	// bandera del otro rol. Devuelve cuántas marcó.
	MarkAllRead(role string) (int64, error)
	UnreadCount(role string) (int64, error)
	// PurgeBefore elimina las notificaciones anteriores al corte. Devuelve cuántas borró.
	PurgeBefore(cutoff time.Time) (int64, error)
	Count() (int64, error)
}
