package repository

import "github.com/tu-usuario/pos-inventario/internal/domain/entity"

// SettingsRepository define el puerto de persistencia para el documento
// singleton de configuración (id "global").
type SettingsRepository interface {
	// Get devuelve los settings almacenados o (nil, nil) si el documento no existe.
	Get() (*entity.Settings, error)
	// Save upsertea el documento completo (last-write-wins).
	Save(s *entity.Settings) error
}
