// Package settings gestiona el documento singleton de configuración que
// habilita capacidades del rol manager. Lectura cacheada con invalidación al
// escribir: los casos de uso lo consultan en cada operación sin ir a la DB.
package settings

import (
	"sync"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// Service acceso cacheado al documento global de settings.
type Service struct {
	repo          repository.SettingsRepository
	fallbackEmail string

	mu     sync.RWMutex
	cached *entity.Settings
}

// NewService construye el servicio. fallbackEmail es el destinatario de
// alertas cuando settings.alert_email está vacío.
func NewService(repo repository.SettingsRepository, fallbackEmail string) *Service {
	return &Service{repo: repo, fallbackEmail: fallbackEmail}
}

// Get devuelve los settings vigentes. Si el documento no existe aplica los
// defaults. El resultado se cachea hasta la próxima escritura.
func (s *Service) Get() (*entity.Settings, error) {
	s.mu.RLock()
	if s.cached != nil {
		out := *s.cached
		s.mu.RUnlock()
		return &out, nil
	}
	s.mu.RUnlock()

	stored, err := s.repo.Get()
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = entity.DefaultSettings(s.fallbackEmail)
	}
	if stored.AlertEmail == "" {
		stored.AlertEmail = s.fallbackEmail
	}

	s.mu.Lock()
	s.cached = stored
	out := *stored
	s.mu.Unlock()
	return &out, nil
}

// Update aplica una actualización parcial (merge) y guarda el documento
// completo (last-write-wins). Solo admin. Invalida la caché al persistir.
func (s *Service) Update(actor authz.Actor, in dto.UpdateSettingsRequest) (*entity.Settings, error) {
	current, err := s.Get()
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor.Role, authz.ActionManageSettings, current) {
		return nil, domain.ErrPermission
	}

	if in.ManagerCanEditInventory != nil {
		current.ManagerCanEditInventory = *in.ManagerCanEditInventory
	}
	if in.ManagerCanEditDescription != nil {
		current.ManagerCanEditDescription = *in.ManagerCanEditDescription
	}
	if in.ManagerCanViewReports != nil {
		current.ManagerCanViewReports = *in.ManagerCanViewReports
	}
	if in.ManagerCanEditAlertLimit != nil {
		current.ManagerCanEditAlertLimit = *in.ManagerCanEditAlertLimit
	}
	if in.AlertEmail != nil {
		current.AlertEmail = *in.AlertEmail
	}
	current.UpdatedAt = time.Now()

	if err := s.repo.Save(current); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = current
	out := *current
	s.mu.Unlock()
	return &out, nil
}

// Invalidate descarta la caché; la próxima lectura va a la DB.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
