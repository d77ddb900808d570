package entity

import "time"

// SettingsID identidad del documento singleton de configuración.
const SettingsID = "global"

// Settings configuración global que habilita capacidades del rol manager.
// Lectura intensiva, escritura rara (toggles del admin); last-write-wins.
type Settings struct {
	ManagerCanEditInventory   bool
	ManagerCanEditDescription bool
	ManagerCanViewReports     bool
	ManagerCanEditAlertLimit  bool
	AlertEmail                string // destinatario de alertas de stock bajo
	UpdatedAt                 time.Time
}

// DefaultSettings valores vigentes cuando el documento global no existe.
// fallbackEmail es el destinatario de respaldo configurado en la aplicación.
func DefaultSettings(fallbackEmail string) *Settings {
	return &Settings{
		ManagerCanEditInventory:   true,
		ManagerCanEditDescription: false,
		ManagerCanViewReports:     false,
		ManagerCanEditAlertLimit:  false,
		AlertEmail:                fallbackEmail,
	}
}
