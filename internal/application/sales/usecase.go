// Package sales confirma ventas: bloqueo y verificación de existencias de
// todas las líneas, descuento, numeración de factura y registro, todo en una
// transacción. Incluye consulta, borrado y listado paginado.
package sales

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
	"github.com/tu-usuario/pos-inventario/pkg/pagination"
)

const (
	dateLayout       = "2006-01-02"
	invoicePrefixFmt = "20060102"
)

// UseCase operaciones de ventas.
type UseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	stock        StockDecrementer
	settings     settingsProvider
	alerts       AlertNotifier
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	stock StockDecrementer,
	settings settingsProvider,
	alerts AlertNotifier,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		stock:        stock,
		settings:     settings,
		alerts:       alerts,
	}
}

type lowStockHit struct {
	product   *entity.Product
	remaining int64
}

// CreateSale confirma una venta. Fecha, cliente y al menos una línea son
// obligatorios. Dentro de la transacción: carga y bloquea cada producto,
// verifica existencias, descuenta, asigna el número de factura del día y
// persiste la venta. Si alguna línea no alcanza, toda la venta se rechaza con
// el detalle del faltante y nada se descuenta. Las alertas de stock bajo se
// evalúan después del commit.
func (uc *UseCase) CreateSale(ctx context.Context, actor authz.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrValidation
	}
	if in.Date == "" || strings.TrimSpace(in.CustomerID) == "" {
		return nil, domain.ErrValidation
	}
	saleDate, err := parseSaleDate(in.Date)
	if err != nil {
		return nil, err
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	customerName := customer.Name

	var (
		sale *entity.Sale
		hits []lowStockHit
	)
	err = uc.txRunner.RunSale(ctx, func(productRepo repository.ProductRepository, invRepo repository.InventoryRepository, saleRepo repository.SaleRepository) error {
		items := make([]entity.SaleItem, 0, len(in.Items))
		total := decimal.Zero
		hits = hits[:0]

		for _, line := range in.Items {
			if line.Quantity <= 0 {
				return domain.ErrValidation
			}
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}

			remaining, err := uc.stock.DecrementForSaleTx(invRepo, product, line.Quantity)
			if err != nil {
				return err
			}
			hits = append(hits, lowStockHit{product: product, remaining: remaining})

			price := line.Price
			if price.IsZero() {
				price = product.Price
			}
			if price.IsNegative() {
				return domain.ErrValidation
			}
			lineTotal := price.Mul(decimal.NewFromInt(line.Quantity))
			items = append(items, entity.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				Price:       price,
				Total:       lineTotal,
			})
			total = total.Add(lineTotal)
		}

		invoiceNo, err := nextInvoiceNo(saleRepo, saleDate)
		if err != nil {
			return err
		}

		sale = &entity.Sale{
			ID:           uuid.New().String(),
			InvoiceNo:    invoiceNo,
			Date:         saleDate,
			CustomerID:   in.CustomerID,
			CustomerName: customerName,
			Items:        items,
			Total:        total,
			CreatedAt:    time.Now(),
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	for _, h := range hits {
		uc.alerts.LowStock(h.product, h.remaining)
	}
	return toSaleResponse(sale), nil
}

// NextInvoiceNo devuelve el número que recibiría la próxima venta de la fecha
// dada. Es una vista previa: el número definitivo se asigna dentro de la
// transacción de confirmación.
func (uc *UseCase) NextInvoiceNo(date string) (*dto.NextInvoiceResponse, error) {
	saleDate, err := parseSaleDate(date)
	if err != nil {
		return nil, err
	}
	invoiceNo, err := nextInvoiceNo(uc.saleRepo, saleDate)
	if err != nil {
		return nil, err
	}
	return &dto.NextInvoiceResponse{InvoiceNo: invoiceNo}, nil
}

// GetSale devuelve una venta por id.
func (uc *UseCase) GetSale(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// DeleteSale elimina una venta del historial. Solo admin. Las existencias
// descontadas al confirmarla no se restauran.
func (uc *UseCase) DeleteSale(actor authz.Actor, id string) error {
	s, err := uc.settings.Get()
	if err != nil {
		return err
	}
	if !authz.CanPerform(actor.Role, authz.ActionDeleteSale, s) {
		return domain.ErrPermission
	}
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	return uc.saleRepo.Delete(id)
}

// List devuelve una página de ventas, las más recientes primero.
func (uc *UseCase) List(cursor string, limit int) (*dto.SaleListResponse, error) {
	limit = pagination.ClampSize(limit)
	cur, err := pagination.Decode(cursor)
	if err != nil {
		return nil, domain.ErrValidation
	}
	afterInvoiceNo, afterID := "", ""
	if cur != nil {
		afterInvoiceNo, afterID = cur.Key, cur.ID
	}

	sales, err := uc.saleRepo.List(afterInvoiceNo, afterID, limit+1)
	if err != nil {
		return nil, err
	}
	isLast := len(sales) <= limit
	if !isLast {
		sales = sales[:limit]
	}
	total, err := uc.saleRepo.Count()
	if err != nil {
		return nil, err
	}

	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.CursorPageResponse{IsLastPage: isLast, Total: total},
	}
	for _, s := range sales {
		out.Items = append(out.Items, *toSaleResponse(s))
	}
	if !isLast && len(sales) > 0 {
		last := sales[len(sales)-1]
		out.Page.NextCursor = pagination.Cursor{Key: last.InvoiceNo, ID: last.ID}.Encode()
	}
	return out, nil
}

// nextInvoiceNo calcula YYYYMMDD-NNN a partir de la última factura del día.
// Un invoice_no malformado reinicia la secuencia del día en 001.
func nextInvoiceNo(saleRepo repository.SaleRepository, date time.Time) (string, error) {
	prefix := date.Format(invoicePrefixFmt)
	latest, err := saleRepo.LatestInvoiceNo(prefix)
	if err != nil {
		return "", err
	}
	seq := 1
	if latest != "" {
		if idx := strings.LastIndex(latest, "-"); idx >= 0 {
			if n, err := strconv.Atoi(latest[idx+1:]); err == nil {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, seq), nil
}

func parseSaleDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, domain.ErrValidation
	}
	return t, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total,
		})
	}
	return &dto.SaleResponse{
		ID:           s.ID,
		InvoiceNo:    s.InvoiceNo,
		Date:         s.Date.Format(dateLayout),
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		Items:        items,
		Total:        s.Total,
		CreatedAt:    s.CreatedAt,
	}
}
