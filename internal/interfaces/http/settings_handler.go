package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/settings"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

// SettingsHandler maneja la configuración global (protegido).
type SettingsHandler struct {
	svc *settings.Service
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get godoc
// @Summary      Configuración vigente
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.svc.Get()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSettingsResponse(s))
}

// Update godoc
// @Summary      Actualizar configuración (solo admin, merge parcial)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.svc.Update(actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSettingsResponse(s))
}

func toSettingsResponse(s *entity.Settings) dto.SettingsResponse {
	return dto.SettingsResponse{
		ManagerCanEditInventory:   s.ManagerCanEditInventory,
		ManagerCanEditDescription: s.ManagerCanEditDescription,
		ManagerCanViewReports:     s.ManagerCanViewReports,
		ManagerCanEditAlertLimit:  s.ManagerCanEditAlertLimit,
		AlertEmail:                s.AlertEmail,
		UpdatedAt:                 s.UpdatedAt,
	}
}
