package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsRepository sobre PostgreSQL.
// La tabla guarda un único documento con id fijo.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve los settings almacenados o (nil, nil) si el documento no existe.
func (r *SettingsRepo) Get() (*entity.Settings, error) {
	query := `
		SELECT manager_can_edit_inventory, manager_can_edit_description,
		       manager_can_view_reports, manager_can_edit_alert_limit,
		       alert_email, updated_at
		FROM settings WHERE id = $1`
	var s entity.Settings
	err := r.q.QueryRow(context.Background(), query, entity.SettingsID).Scan(
		&s.ManagerCanEditInventory, &s.ManagerCanEditDescription,
		&s.ManagerCanViewReports, &s.ManagerCanEditAlertLimit,
		&s.AlertEmail, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Save upsertea el documento completo (last-write-wins).
func (r *SettingsRepo) Save(s *entity.Settings) error {
	query := `
		INSERT INTO settings
			(id, manager_can_edit_inventory, manager_can_edit_description,
			 manager_can_view_reports, manager_can_edit_alert_limit, alert_email, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET manager_can_edit_inventory = EXCLUDED.manager_can_edit_inventory,
		    manager_can_edit_description = EXCLUDED.manager_can_edit_description,
		    manager_can_view_reports = EXCLUDED.manager_can_view_reports,
		    manager_can_edit_alert_limit = EXCLUDED.manager_can_edit_alert_limit,
		    alert_email = EXCLUDED.alert_email,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		entity.SettingsID,
		s.ManagerCanEditInventory, s.ManagerCanEditDescription,
		s.ManagerCanViewReports, s.ManagerCanEditAlertLimit,
		s.AlertEmail, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
