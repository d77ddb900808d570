package notification

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
	"github.com/tu-usuario/pos-inventario/pkg/pagination"
)

// UseCase listado, marcado de lectura por rol y purga de notificaciones.
type UseCase struct {
	repo     repository.NotificationRepository
	settings settingsProvider
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository, settings settingsProvider) *UseCase {
	return &UseCase{repo: repo, settings: settings}
}

// List devuelve una página de notificaciones (recientes primero) y marca como
// leídas todas las pendientes del rol del actor, sin tocar la bandera del otro
// rol. El conteo de no leídas reportado es el previo al marcado.
func (uc *UseCase) List(actor authz.Actor, cursor string, limit int) (*dto.NotificationListResponse, error) {
	limit = pagination.ClampSize(limit)
	cur, err := pagination.Decode(cursor)
	if err != nil {
		return nil, domain.ErrValidation
	}
	afterTS, afterID := "", ""
	if cur != nil {
		afterTS, afterID = cur.Key, cur.ID
	}

	unread, err := uc.repo.UnreadCount(actor.Role)
	if err != nil {
		return nil, err
	}

	items, err := uc.repo.List(afterTS, afterID, limit+1)
	if err != nil {
		return nil, err
	}
	isLast := len(items) <= limit
	if !isLast {
		items = items[:limit]
	}

	if _, err := uc.repo.MarkAllRead(actor.Role); err != nil {
		return nil, fmt.Errorf("marcar notificaciones leídas: %w", err)
	}

	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}

	out := &dto.NotificationListResponse{
		Items:  make([]dto.NotificationResponse, 0, len(items)),
		Unread: unread,
		Page:   dto.CursorPageResponse{IsLastPage: isLast, Total: total},
	}
	for _, n := range items {
		out.Items = append(out.Items, dto.NotificationResponse{
			ID:          n.ID,
			Message:     n.Message,
			Timestamp:   n.Timestamp,
			AdminRead:   n.AdminRead,
			ManagerRead: n.ManagerRead,
		})
	}
	if !isLast && len(items) > 0 {
		last := items[len(items)-1]
		out.Page.NextCursor = pagination.Cursor{
			Key: last.Timestamp.UTC().Format(time.RFC3339Nano),
			ID:  last.ID,
		}.Encode()
	}
	return out, nil
}

// Purge elimina las notificaciones anteriores a la fecha de corte. Solo admin.
func (uc *UseCase) Purge(actor authz.Actor, in dto.PurgeNotificationsRequest) (*dto.PurgeNotificationsResponse, error) {
	s, err := uc.settings.Get()
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor.Role, authz.ActionPurgeNotifications, s) {
		return nil, domain.ErrPermission
	}
	cutoff, err := time.Parse("2006-01-02", in.Before)
	if err != nil {
		return nil, domain.ErrValidation
	}
	deleted, err := uc.repo.PurgeBefore(cutoff)
	if err != nil {
		return nil, err
	}
	return &dto.PurgeNotificationsResponse{Deleted: deleted}, nil
}

// lowStockMessage plantilla del mensaje de alerta.
func lowStockMessage(name, sku string, remaining, limit int64) string {
	return fmt.Sprintf("Alerta de stock bajo: %s (SKU: %s) tiene solo %d unidades (límite de alerta: %d).",
		name, sku, remaining, limit)
}

func formatInt(n int64) string { return strconv.FormatInt(n, 10) }
