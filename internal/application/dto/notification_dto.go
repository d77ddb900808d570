package dto

import "time"

// NotificationResponse salida de una notificación de stock bajo.
type NotificationResponse struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	AdminRead   bool      `json:"admin_read"`
	ManagerRead bool      `json:"manager_read"`
}

// NotificationListResponse lista paginada con el conteo de no leídas del rol consultante.
type NotificationListResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int64                  `json:"unread"`
	Page   CursorPageResponse     `json:"page"`
}

// PurgeNotificationsRequest borra las notificaciones anteriores al corte.
type PurgeNotificationsRequest struct {
	Before string `json:"before"` // YYYY-MM-DD
}

// PurgeNotificationsResponse cuántas se eliminaron.
type PurgeNotificationsResponse struct {
	Deleted int64 `json:"deleted"`
}
