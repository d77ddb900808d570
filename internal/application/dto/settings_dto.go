package dto

import "time"

// UpdateSettingsRequest actualización parcial del documento global de
// configuración (semántica merge: campos nil no se tocan).
type UpdateSettingsRequest struct {
	ManagerCanEditInventory   *bool   `json:"managerCanEditInventory"`
	ManagerCanEditDescription *bool   `json:"managerCanEditDescription"`
	ManagerCanViewReports     *bool   `json:"managerCanViewReports"`
	ManagerCanEditAlertLimit  *bool   `json:"managerCanEditAlertLimit"`
	AlertEmail                *string `json:"alert_email"`
}

// SettingsResponse estado vigente de la configuración.
type SettingsResponse struct {
	ManagerCanEditInventory   bool      `json:"managerCanEditInventory"`
	ManagerCanEditDescription bool      `json:"managerCanEditDescription"`
	ManagerCanViewReports     bool      `json:"managerCanViewReports"`
	ManagerCanEditAlertLimit  bool      `json:"managerCanEditAlertLimit"`
	AlertEmail                string    `json:"alert_email"`
	UpdatedAt                 time.Time `json:"updated_at"`
}
