// Package inventory implementa las mutaciones de existencias: fijar cantidad,
// incrementar y descontar por venta, todas con bloqueo de fila dentro de una
// transacción, más el listado producto⋈existencias.
package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
	"github.com/tu-usuario/pos-inventario/pkg/pagination"
)

// UseCase mutaciones y listado de inventario.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	invRepo     repository.InventoryRepository
	settings    settingsProvider
	alerts      AlertNotifier
}

// NewUseCase construye el caso de uso.
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

// SetQuantity fija la cantidad absoluta de un producto. El admin puede fijar
// cualquier valor no negativo (incluyendo bajadas); el manager solo valores
// mayores o iguales a la cantidad actual. La comparación contra la cantidad
// vigente ocurre con la fila bloqueada, así el chequeo y la escritura son una
// unidad. La alerta se evalúa tras confirmar.
func (uc *UseCase) SetQuantity(ctx context.Context, actor authz.Actor, productID string, quantity int64) (*dto.QuantityResponse, error) {
	if quantity < 0 {
		return nil, domain.ErrValidation
	}
	s, err := uc.settings.Get()
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor.Role, authz.ActionSetQuantity, s) {
		return nil, domain.ErrPermission
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(_ repository.ProductRepository, invRepo repository.InventoryRepository) error {
		rec, err := invRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		current := int64(0)
		if rec != nil {
			current = rec.Quantity
		}
		// Bajadas manuales: exclusivas del admin
		if quantity < current && !authz.CanPerform(actor.Role, authz.ActionDecreaseQuantity, s) {
			return domain.ErrPermission
		}
		return invRepo.Upsert(&entity.InventoryRecord{
			ProductID:   productID,
			SKU:         product.SKU,
			ProductName: product.Name,
			Quantity:    quantity,
			UpdatedAt:   time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.alerts.LowStock(product, quantity)
	return &dto.QuantityResponse{
		ProductID: productID,
		Quantity:  quantity,
		LowStock:  quantity < product.AlertLimit,
	}, nil
}

// Increment suma un delta positivo a la cantidad actual. Disponible para
// manager y admin (sujeto al flag managerCanEditInventory).
func (uc *UseCase) Increment(ctx context.Context, actor authz.Actor, productID string, delta int64) (*dto.QuantityResponse, error) {
	if delta <= 0 {
		return nil, domain.ErrValidation
	}
	s, err := uc.settings.Get()
	if err != nil {
		return nil, err
	}
	if !authz.CanPerform(actor.Role, authz.ActionIncrementQuantity, s) {
		return nil, domain.ErrPermission
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var result int64
	err = uc.txRunner.Run(ctx, func(_ repository.ProductRepository, invRepo repository.InventoryRepository) error {
		rec, err := invRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		current := int64(0)
		if rec != nil {
			current = rec.Quantity
		}
		result = current + delta
		return invRepo.Upsert(&entity.InventoryRecord{
			ProductID:   productID,
			SKU:         product.SKU,
			ProductName: product.Name,
			Quantity:    result,
			UpdatedAt:   time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.alerts.LowStock(product, result)
	return &dto.QuantityResponse{
		ProductID: productID,
		Quantity:  result,
		LowStock:  result < product.AlertLimit,
	}, nil
}

// DecrementForSaleTx descuenta existencias dentro de la transacción del
// caller (confirmación de venta). No re-chequea rol: corre bajo la autoridad
// de la venta. Devuelve la cantidad resultante para la evaluación de alertas
// posterior al commit.
func (uc *UseCase) DecrementForSaleTx(invRepo repository.InventoryRepository, product *entity.Product, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, domain.ErrValidation
	}
	rec, err := invRepo.GetForUpdate(product.ID)
	if err != nil {
		return 0, err
	}
	available := int64(0)
	if rec != nil {
		available = rec.Quantity
	}
	if quantity > available {
		return 0, &domain.StockShortage{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   available,
			Requested:   quantity,
		}
	}
	remaining := available - quantity
	err = invRepo.Upsert(&entity.InventoryRecord{
		ProductID:   product.ID,
		SKU:         product.SKU,
		ProductName: product.Name,
		Quantity:    remaining,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// List materializa el listado de inventario: página de productos (orden por
// nombre) joineada con sus registros de existencias por product_id. Un
// producto sin registro se muestra con cantidad 0.
func (uc *UseCase) List(cursor string, limit int) (*dto.InventoryListResponse, error) {
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

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	records, err := uc.invRepo.ListByProductIDs(ids)
	if err != nil {
		return nil, err
	}
	qtyByProduct := make(map[string]int64, len(records))
	for _, r := range records {
		qtyByProduct[r.ProductID] = r.Quantity
	}

	total, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}

	out := &dto.InventoryListResponse{
		Items: make([]dto.InventoryRowResponse, 0, len(products)),
		Page:  dto.CursorPageResponse{IsLastPage: isLast, Total: total},
	}
	for _, p := range products {
		qty := qtyByProduct[p.ID]
		out.Items = append(out.Items, dto.InventoryRowResponse{
			ProductID:   p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			Description: p.Description,
			Quantity:    qty,
			AlertLimit:  p.AlertLimit,
			LowStock:    qty < p.AlertLimit,
		})
	}
	if !isLast && len(products) > 0 {
		last := products[len(products)-1]
		out.Page.NextCursor = pagination.Cursor{Key: last.Name, ID: last.ID}.Encode()
	}
	return out, nil
}
