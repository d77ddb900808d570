// Package catalog gestiona el ciclo de vida de productos: alta con siembra
// de existencias, edición con permisos por campo, baja y listado paginado.
package catalog

import (
	"context"
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

// UseCase operaciones sobre el catálogo de productos.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	invRepo     repository.InventoryRepository
	settings    settingsProvider
	alerts      AlertNotifier
}

// NewUseCase construye el caso de uso del catálogo.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	settings settingsProvider,
	alerts AlertNotifier,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		invRepo:     invRepo,
		settings:    settings,
		alerts:      alerts,
	}
}

// AddProduct crea el producto y su registro de existencias inicial en una
// sola transacción: o existen ambos o ninguno. El SKU se normaliza y debe ser
// único en el catálogo.
func (uc *UseCase) AddProduct(ctx context.Context, actor authz.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	s, err := uc.settings.Get()
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor.Role, authz.ActionEditProduct, s) {
		return nil, domain.ErrPermission
	}
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, domain.ErrValidation
	}
	if in.Price.IsNegative() || in.InitialQuantity < 0 {
		return nil, domain.ErrValidation
	}
	alertLimit := in.AlertLimit
	if alertLimit <= 0 {
		alertLimit = entity.DefaultAlertLimit
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         sku,
		Name:        name,
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		AlertLimit:  alertLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, invRepo repository.InventoryRepository) error {
		existing, err := productRepo.GetBySKU(sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := productRepo.Create(product); err != nil {
			return err
		}
		return invRepo.Upsert(&entity.InventoryRecord{
			ProductID:   product.ID,
			SKU:         product.SKU,
			ProductName: product.Name,
			Quantity:    in.InitialQuantity,
			UpdatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.alerts.LowStock(product, in.InitialQuantity)
	return toProductResponse(product), nil
}

// EditProduct aplica una edición parcial. Los campos description y
// alertLimit tienen flags de permiso propios para el manager; el resto de
// campos se rigen por el permiso general de edición. La desnormalización de
// sku/nombre en existencias se refresca dentro de la misma transacción.
func (uc *UseCase) EditProduct(ctx context.Context, actor authz.Actor, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	s, err := uc.settings.Get()
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor.Role, authz.ActionEditProduct, s) {
		return nil, domain.ErrPermission
	}
	if in.Description != nil && !authz.CanPerform(actor.Role, authz.ActionEditDescription, s) {
		return nil, domain.ErrPermission
	}
	if in.AlertLimit != nil && !authz.CanPerform(actor.Role, authz.ActionEditAlertLimit, s) {
		return nil, domain.ErrPermission
	}

	var updated *entity.Product
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, invRepo repository.InventoryRepository) error {
		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		denormDirty := false
		if in.SKU != nil {
			sku := strings.TrimSpace(*in.SKU)
			if sku == "" {
				return domain.ErrValidation
			}
			if sku != product.SKU {
				other, err := productRepo.GetBySKU(sku)
				if err != nil {
					return err
				}
				if other != nil && other.ID != product.ID {
					return domain.ErrDuplicate
				}
				product.SKU = sku
				denormDirty = true
			}
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrValidation
			}
			if name != product.Name {
				product.Name = name
				denormDirty = true
			}
		}
		if in.Price != nil {
			if in.Price.IsNegative() {
				return domain.ErrValidation
			}
			product.Price = *in.Price
		}
		if in.Description != nil {
			product.Description = strings.TrimSpace(*in.Description)
		}
		if in.AlertLimit != nil {
			// El límite almacenado nunca baja de 1.
			if *in.AlertLimit < 1 {
				return domain.ErrValidation
			}
			product.AlertLimit = *in.AlertLimit
		}
		product.UpdatedAt = time.Now()

		if err := productRepo.Update(product); err != nil {
			return err
		}
		if denormDirty {
			if err := invRepo.RefreshDenorm(product.ID, product.SKU, product.Name); err != nil {
				return err
			}
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// GetProduct devuelve un producto por id.
func (uc *UseCase) GetProduct(productID string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// DeleteProduct elimina el producto del catálogo. Solo admin. El registro de
// existencias y las ventas históricas que lo referencian se conservan.
func (uc *UseCase) DeleteProduct(ctx context.Context, actor authz.Actor, productID string) error {
	s, err := uc.settings.Get()
	if err != nil {
		return err
	}
	if !authz.CanPerform(actor.Role, authz.ActionDeleteProduct, s) {
		return domain.ErrPermission
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(productID)
}

// List devuelve una página de productos en orden por nombre.
func (uc *UseCase) List(cursor string, limit int) (*dto.ProductListResponse, error) {
	limit = pagination.ClampSize(limit)
	cur, err := pagination.Decode(cursor)
	if err != nil {
		return nil, domain.ErrValidation
	}
	afterName, afterID := "", ""
	if cur != nil {
		afterName, afterID = cur.Key, cur.ID
	}

	products, err := uc.productRepo.List(afterName, afterID, limit+1)
	if err != nil {
		return nil, err
	}
	isLast := len(products) <= limit
	if !isLast {
		products = products[:limit]
	}
	total, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}

	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.CursorPageResponse{IsLastPage: isLast, Total: total},
	}
	for _, p := range products {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	if !isLast && len(products) > 0 {
		last := products[len(products)-1]
		out.Page.NextCursor = pagination.Cursor{Key: last.Name, ID: last.ID}.Encode()
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		AlertLimit:  p.AlertLimit,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
