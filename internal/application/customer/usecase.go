// Package customer gestiona los clientes de crédito: alta, edición, ajuste
// de saldo y listado paginado.
package customer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
	"github.com/tu-usuario/pos-inventario/pkg/pagination"
)

type settingsProvider interface {
	Get() (*entity.Settings, error)
}

// UseCase operaciones sobre clientes.
type UseCase struct {
	repo     repository.CustomerRepository
	settings settingsProvider
}

// NewUseCase construye el caso de uso de clientes.
func NewUseCase(repo repository.CustomerRepository, settings settingsProvider) *UseCase {
	return &UseCase{repo: repo, settings: settings}
}

// Create registra un cliente. El crédito inicial puede ser cualquier entero
// (un saldo negativo representa deuda).
func (uc *UseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Company:   strings.TrimSpace(in.Company),
		Credit:    in.Credit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get devuelve un cliente por id.
func (uc *UseCase) Get(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Update aplica una edición parcial. La edición directa del crédito (valor
// absoluto) es exclusiva del admin; nombre y empresa los edita cualquiera.
func (uc *UseCase) Update(actor authz.Actor, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Credit != nil {
		s, err := uc.settings.Get()
		if err != nil {
			return nil, err
		}
		if !authz.CanPerform(actor.Role, authz.ActionAdjustCredit, s) {
			return nil, domain.ErrPermission
		}
	}
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrValidation
		}
		customer.Name = name
	}
	if in.Company != nil {
		customer.Company = strings.TrimSpace(*in.Company)
	}
	if in.Credit != nil {
		customer.Credit = *in.Credit
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// AdjustCredit suma un delta con signo al saldo. Solo admin. El ajuste es
// atómico en la base, así dos ajustes concurrentes no se pisan.
func (uc *UseCase) AdjustCredit(actor authz.Actor, id string, in dto.AdjustCreditRequest) (*dto.CustomerResponse, error) {
	s, err := uc.settings.Get()
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor.Role, authz.ActionAdjustCredit, s) {
		return nil, domain.ErrPermission
	}
	if in.Delta == 0 {
		return nil, domain.ErrValidation
	}
	if _, err := uc.repo.AdjustCredit(id, in.Delta); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente. Las ventas históricas conservan su instantánea
// de nombre, así el historial no se rompe.
func (uc *UseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List devuelve una página de clientes en orden por nombre.
func (uc *UseCase) List(cursor string, limit int) (*dto.CustomerListResponse, error) {
	limit = pagination.ClampSize(limit)
	cur, err := pagination.Decode(cursor)
	if err != nil {
		return nil, domain.ErrValidation
	}
	afterName, afterID := "", ""
	if cur != nil {
		afterName, afterID = cur.Key, cur.ID
	}

	customers, err := uc.repo.List(afterName, afterID, limit+1)
	if err != nil {
		return nil, err
	}
	isLast := len(customers) <= limit
	if !isLast {
		customers = customers[:limit]
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}

	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(customers)),
		Page:  dto.CursorPageResponse{IsLastPage: isLast, Total: total},
	}
	for _, c := range customers {
		out.Items = append(out.Items, *toCustomerResponse(c))
	}
	if !isLast && len(customers) > 0 {
		last := customers[len(customers)-1]
		out.Page.NextCursor = pagination.Cursor{Key: last.Name, ID: last.ID}.Encode()
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		Credit:    c.Credit,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
