// Package authz concentra la política de autorización por rol y settings.
// Cada operación de negocio se autoriza una sola vez en la frontera del caso
// de uso con CanPerform, en lugar de chequeos booleanos dispersos.
package authz

import "github.com/tu-usuario/pos-inventario/internal/domain/entity"

// Action identifica una operación gateada.
type Action string

const (
	ActionSetQuantity        Action = "inventory.set_quantity"
	ActionDecreaseQuantity   Action = "inventory.decrease_quantity"
	ActionIncrementQuantity  Action = "inventory.increment_quantity"
	ActionEditProduct        Action = "catalog.edit_product"
	ActionEditDescription    Action = "catalog.edit_description"
	ActionEditAlertLimit     Action = "catalog.edit_alert_limit"
	ActionDeleteProduct      Action = "catalog.delete_product"
	ActionAdjustCredit       Action = "customers.adjust_credit"
	ActionDeleteSale         Action = "sales.delete"
	ActionViewReports        Action = "reports.view"
	ActionPurgeNotifications Action = "notifications.purge"
	ActionManageSettings     Action = "settings.manage"
	ActionManageUsers        Action = "users.manage"
)

// Actor identidad mínima que necesita la política: quién y con qué rol.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin indica si el actor tiene rol admin.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// CanPerform decide si un rol puede ejecutar una acción bajo los settings
// vigentes. El admin siempre puede; el manager según los flags de Settings.
func CanPerform(role string, action Action, s *entity.Settings) bool {
	if role == entity.RoleAdmin {
		return true
	}
	if role != entity.RoleManager || s == nil {
		return false
	}
	switch action {
	case ActionSetQuantity, ActionIncrementQuantity:
		return s.ManagerCanEditInventory
	case ActionEditProduct:
		return true
	case ActionEditDescription:
		return s.ManagerCanEditDescription
	case ActionEditAlertLimit:
		return s.ManagerCanEditAlertLimit
	case ActionViewReports:
		return s.ManagerCanViewReports
	default:
		// decreases manuales, crédito, borrado de ventas, purga,
		// settings y usuarios son exclusivos del admin
		return false
	}
}
