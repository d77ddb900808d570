package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/notification"
)

// NotificationHandler maneja las peticiones HTTP de notificaciones (protegido).
type NotificationHandler struct {
	uc *notification.UseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Listar notificaciones (marca como leídas las del rol consultante)
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        cursor  query  string  false  "Cursor de la página anterior"
// @Param        limit   query  int     false  "Tamaño de página"  default(20)
// @Success      200     {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(actor(c), c.Query("cursor"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Purge godoc
// @Summary      Purgar notificaciones anteriores a una fecha (solo admin)
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurgeNotificationsRequest  true  "Fecha de corte"
// @Success      200   {object}  dto.PurgeNotificationsResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/notifications/purge [post]
func (h *NotificationHandler) Purge(c *fiber.Ctx) error {
	var in dto.PurgeNotificationsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Purge(actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
