package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación con ambas banderas de lectura en false.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, message, ts, admin_read, manager_read)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.Message, n.Timestamp, n.AdminRead, n.ManagerRead,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List devuelve una página keyset ordenada por (ts, id) descendente.
// afterTimestamp viene en RFC3339Nano; NULLIF evita castear la cadena vacía
// de la primera página.
func (r *NotificationRepo) List(afterTimestamp, afterID string, limit int) ([]*entity.Notification, error) {
	query := `
		SELECT id, message, ts, admin_read, manager_read
		FROM notifications
		WHERE ($1 = '' AND $2 = '') OR (ts, id) < (NULLIF($1, '')::timestamptz, $2)
		ORDER BY ts DESC, id DESC
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, afterTimestamp, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.Timestamp, &n.AdminRead, &n.ManagerRead); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkAllRead marca como leídas las pendientes del rol dado sin tocar la
// bandera del otro rol.
func (r *NotificationRepo) MarkAllRead(role string) (int64, error) {
	column, err := readColumn(role)
	if err != nil {
		return 0, err
	}
	query := `UPDATE notifications SET ` + column + ` = true WHERE ` + column + ` = false`
	cmd, err := r.q.Exec(context.Background(), query)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// UnreadCount cuenta las notificaciones no leídas por el rol dado.
func (r *NotificationRepo) UnreadCount(role string) (int64, error) {
	column, err := readColumn(role)
	if err != nil {
		return 0, err
	}
	var n int64
	err = r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM notifications WHERE `+column+` = false`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// PurgeBefore elimina las notificaciones anteriores al corte.
func (r *NotificationRepo) PurgeBefore(cutoff time.Time) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM notifications WHERE ts < $1`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Count total de notificaciones.
func (r *NotificationRepo) Count() (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM notifications`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return n, nil
}

// readColumn mapea el rol a su columna de lectura. Lista blanca: el nombre se
// concatena al SQL.
func readColumn(role string) (string, error) {
	switch role {
	case entity.RoleAdmin:
		return "admin_read", nil
	case entity.RoleManager:
		return "manager_read", nil
	default:
		return "", fmt.Errorf("rol desconocido: %q", role)
	}
}
