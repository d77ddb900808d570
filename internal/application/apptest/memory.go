// Package apptest provee dobles en memoria de los puertos de persistencia
// para los tests de los casos de uso. El TxRunner simula atomicidad con
// snapshot y restauración: si el callback falla, ninguna escritura sobrevive.
package apptest

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tu-usuario/pos-inventario/internal/application/notification"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
)

// ── Productos ─────────────────────────────────────────────────────────────────

// MemProducts implementación en memoria de ProductRepository.
type MemProducts struct {
	byID map[string]*entity.Product
}

// NewMemProducts construye el repo vacío.
func NewMemProducts() *MemProducts {
	return &MemProducts{byID: make(map[string]*entity.Product)}
}

func (m *MemProducts) Create(p *entity.Product) error {
	if existing, _ := m.GetBySKU(p.SKU); existing != nil {
		return domain.ErrDuplicate
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *MemProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *MemProducts) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range m.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemProducts) Update(p *entity.Product) error {
	if _, ok := m.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *MemProducts) Delete(id string) error {
	delete(m.byID, id)
	return nil
}

func (m *MemProducts) List(afterName, afterID string, limit int) ([]*entity.Product, error) {
	all := make([]*entity.Product, 0, len(m.byID))
	for _, p := range m.byID {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	out := make([]*entity.Product, 0, limit)
	for _, p := range all {
		if afterName != "" || afterID != "" {
			if p.Name < afterName || (p.Name == afterName && p.ID <= afterID) {
				continue
			}
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemProducts) Count() (int64, error) { return int64(len(m.byID)), nil }

func (m *MemProducts) snapshot() map[string]*entity.Product {
	s := make(map[string]*entity.Product, len(m.byID))
	for k, v := range m.byID {
		cp := *v
		s[k] = &cp
	}
	return s
}

// ── Inventario ────────────────────────────────────────────────────────────────

// MemInventory implementación en memoria de InventoryRepository.
type MemInventory struct {
	byProduct map[string]*entity.InventoryRecord
}

// NewMemInventory construye el repo vacío.
func NewMemInventory() *MemInventory {
	return &MemInventory{byProduct: make(map[string]*entity.InventoryRecord)}
}

// Seed fija una cantidad directamente (preparación de tests).
func (m *MemInventory) Seed(productID, sku, name string, qty int64) {
	m.byProduct[productID] = &entity.InventoryRecord{
		ProductID: productID, SKU: sku, ProductName: name,
		Quantity: qty, UpdatedAt: time.Now(),
	}
}

func (m *MemInventory) GetByProductID(productID string) (*entity.InventoryRecord, error) {
	rec, ok := m.byProduct[productID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *MemInventory) GetForUpdate(productID string) (*entity.InventoryRecord, error) {
	return m.GetByProductID(productID)
}

func (m *MemInventory) Upsert(rec *entity.InventoryRecord) error {
	cp := *rec
	m.byProduct[rec.ProductID] = &cp
	return nil
}

func (m *MemInventory) RefreshDenorm(productID, sku, productName string) error {
	if rec, ok := m.byProduct[productID]; ok {
		rec.SKU = sku
		rec.ProductName = productName
	}
	return nil
}

func (m *MemInventory) ListByProductIDs(productIDs []string) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, id := range productIDs {
		if rec, ok := m.byProduct[id]; ok {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Quantity devuelve la cantidad vigente (0 si no hay registro).
func (m *MemInventory) Quantity(productID string) int64 {
	if rec, ok := m.byProduct[productID]; ok {
		return rec.Quantity
	}
	return 0
}

func (m *MemInventory) snapshot() map[string]*entity.InventoryRecord {
	s := make(map[string]*entity.InventoryRecord, len(m.byProduct))
	for k, v := range m.byProduct {
		cp := *v
		s[k] = &cp
	}
	return s
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// MemSales implementación en memoria de SaleRepository.
type MemSales struct {
	byID map[string]*entity.Sale
}

// NewMemSales construye el repo vacío.
func NewMemSales() *MemSales {
	return &MemSales{byID: make(map[string]*entity.Sale)}
}

func (m *MemSales) Create(sale *entity.Sale) error {
	for _, s := range m.byID {
		if s.InvoiceNo == sale.InvoiceNo {
			return domain.ErrDuplicate
		}
	}
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	m.byID[sale.ID] = &cp
	return nil
}

func (m *MemSales) GetByID(id string) (*entity.Sale, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *MemSales) Delete(id string) error {
	delete(m.byID, id)
	return nil
}

func (m *MemSales) LatestInvoiceNo(datePrefix string) (string, error) {
	// Largo antes que orden lexicográfico, igual que el repo real: "-1000"
	// supera a "-999".
	latest := ""
	for _, s := range m.byID {
		if !strings.HasPrefix(s.InvoiceNo, datePrefix+"-") {
			continue
		}
		if len(s.InvoiceNo) > len(latest) || (len(s.InvoiceNo) == len(latest) && s.InvoiceNo > latest) {
			latest = s.InvoiceNo
		}
	}
	return latest, nil
}

func (m *MemSales) List(afterInvoiceNo, afterID string, limit int) ([]*entity.Sale, error) {
	all := make([]*entity.Sale, 0, len(m.byID))
	for _, s := range m.byID {
		cp := *s
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].InvoiceNo != all[j].InvoiceNo {
			return all[i].InvoiceNo > all[j].InvoiceNo
		}
		return all[i].ID > all[j].ID
	})
	out := make([]*entity.Sale, 0, limit)
	for _, s := range all {
		if afterInvoiceNo != "" || afterID != "" {
			if s.InvoiceNo > afterInvoiceNo || (s.InvoiceNo == afterInvoiceNo && s.ID >= afterID) {
				continue
			}
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemSales) ListByDateRange(from, to time.Time, customerID string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range m.byID {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		if customerID != "" && s.CustomerID != customerID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNo < out[j].InvoiceNo })
	return out, nil
}

func (m *MemSales) Count() (int64, error) { return int64(len(m.byID)), nil }

func (m *MemSales) snapshot() map[string]*entity.Sale {
	s := make(map[string]*entity.Sale, len(m.byID))
	for k, v := range m.byID {
		cp := *v
		cp.Items = append([]entity.SaleItem(nil), v.Items...)
		s[k] = &cp
	}
	return s
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// MemCustomers implementación en memoria de CustomerRepository.
type MemCustomers struct {
	byID map[string]*entity.Customer
}

// NewMemCustomers construye el repo vacío.
func NewMemCustomers() *MemCustomers {
	return &MemCustomers{byID: make(map[string]*entity.Customer)}
}

func (m *MemCustomers) Create(c *entity.Customer) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *MemCustomers) GetByID(id string) (*entity.Customer, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *MemCustomers) Update(c *entity.Customer) error {
	if _, ok := m.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *MemCustomers) Delete(id string) error {
	delete(m.byID, id)
	return nil
}

func (m *MemCustomers) AdjustCredit(id string, delta int64) (int64, error) {
	c, ok := m.byID[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	c.Credit += delta
	return c.Credit, nil
}

func (m *MemCustomers) List(afterName, afterID string, limit int) ([]*entity.Customer, error) {
	all := make([]*entity.Customer, 0, len(m.byID))
	for _, c := range m.byID {
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	out := make([]*entity.Customer, 0, limit)
	for _, c := range all {
		if afterName != "" || afterID != "" {
			if c.Name < afterName || (c.Name == afterName && c.ID <= afterID) {
				continue
			}
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemCustomers) Count() (int64, error) { return int64(len(m.byID)), nil }

// ── Notificaciones ────────────────────────────────────────────────────────────

// MemNotifications implementación en memoria de NotificationRepository.
type MemNotifications struct {
	byID map[string]*entity.Notification
}

// NewMemNotifications construye el repo vacío.
func NewMemNotifications() *MemNotifications {
	return &MemNotifications{byID: make(map[string]*entity.Notification)}
}

func (m *MemNotifications) Create(n *entity.Notification) error {
	cp := *n
	m.byID[n.ID] = &cp
	return nil
}

func (m *MemNotifications) List(afterTimestamp, afterID string, limit int) ([]*entity.Notification, error) {
	all := make([]*entity.Notification, 0, len(m.byID))
	for _, n := range m.byID {
		cp := *n
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Timestamp.Equal(all[j].Timestamp) {
			return all[i].Timestamp.After(all[j].Timestamp)
		}
		return all[i].ID > all[j].ID
	})
	var after time.Time
	if afterTimestamp != "" {
		after, _ = time.Parse(time.RFC3339Nano, afterTimestamp)
	}
	out := make([]*entity.Notification, 0, limit)
	for _, n := range all {
		if afterTimestamp != "" || afterID != "" {
			if n.Timestamp.After(after) || (n.Timestamp.Equal(after) && n.ID >= afterID) {
				continue
			}
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemNotifications) MarkAllRead(role string) (int64, error) {
	var marked int64
	for _, n := range m.byID {
		switch role {
		case entity.RoleAdmin:
			if !n.AdminRead {
				n.AdminRead = true
				marked++
			}
		case entity.RoleManager:
			if !n.ManagerRead {
				n.ManagerRead = true
				marked++
			}
		}
	}
	return marked, nil
}

func (m *MemNotifications) UnreadCount(role string) (int64, error) {
	var unread int64
	for _, n := range m.byID {
		switch role {
		case entity.RoleAdmin:
			if !n.AdminRead {
				unread++
			}
		case entity.RoleManager:
			if !n.ManagerRead {
				unread++
			}
		}
	}
	return unread, nil
}

func (m *MemNotifications) PurgeBefore(cutoff time.Time) (int64, error) {
	var deleted int64
	for id, n := range m.byID {
		if n.Timestamp.Before(cutoff) {
			delete(m.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MemNotifications) Count() (int64, error) { return int64(len(m.byID)), nil }

// Get devuelve una notificación por id (inspección en tests).
func (m *MemNotifications) Get(id string) *entity.Notification {
	n, ok := m.byID[id]
	if !ok {
		return nil
	}
	cp := *n
	return &cp
}

// All devuelve todas las notificaciones (inspección en tests).
func (m *MemNotifications) All() []*entity.Notification {
	out, _ := m.List("", "", len(m.byID))
	return out
}

// ── Settings ──────────────────────────────────────────────────────────────────

// MemSettings implementación en memoria de SettingsRepository.
type MemSettings struct {
	doc *entity.Settings
}

// NewMemSettings construye el repo, opcionalmente con un documento inicial.
func NewMemSettings(doc *entity.Settings) *MemSettings {
	return &MemSettings{doc: doc}
}

func (m *MemSettings) Get() (*entity.Settings, error) {
	if m.doc == nil {
		return nil, nil
	}
	cp := *m.doc
	return &cp, nil
}

func (m *MemSettings) Save(s *entity.Settings) error {
	cp := *s
	m.doc = &cp
	return nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// MemUsers implementación en memoria de UserRepository.
type MemUsers struct {
	byID map[string]*entity.User
}

// NewMemUsers construye el repo vacío.
func NewMemUsers() *MemUsers {
	return &MemUsers{byID: make(map[string]*entity.User)}
}

func (m *MemUsers) Create(u *entity.User) error {
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *MemUsers) GetByID(id string) (*entity.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *MemUsers) FindByEmail(email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemUsers) UpdateRole(id, role string) error {
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (m *MemUsers) UpdatePassword(id, passwordHash string) error {
	u, ok := m.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *MemUsers) List(afterRole, afterID string, limit int) ([]*entity.User, error) {
	all := make([]*entity.User, 0, len(m.byID))
	for _, u := range m.byID {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Role != all[j].Role {
			return all[i].Role < all[j].Role
		}
		return all[i].ID < all[j].ID
	})
	out := make([]*entity.User, 0, limit)
	for _, u := range all {
		if afterRole != "" || afterID != "" {
			if u.Role < afterRole || (u.Role == afterRole && u.ID <= afterID) {
				continue
			}
		}
		out = append(out, u)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemUsers) Count() (int64, error) { return int64(len(m.byID)), nil }

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner ejecuta los callbacks de transacción contra los repos en memoria.
// Antes de cada callback toma un snapshot; si el callback falla, lo restaura,
// emulando el rollback.
type TxRunner struct {
	Products  *MemProducts
	Inventory *MemInventory
	Sales     *MemSales
}

// NewTxRunner construye el runner sobre los repos dados.
func NewTxRunner(products *MemProducts, inventory *MemInventory, sales *MemSales) *TxRunner {
	return &TxRunner{Products: products, Inventory: inventory, Sales: sales}
}

func (r *TxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
) error) error {
	prodSnap, invSnap := r.Products.snapshot(), r.Inventory.snapshot()
	if err := fn(r.Products, r.Inventory); err != nil {
		r.Products.byID, r.Inventory.byProduct = prodSnap, invSnap
		return err
	}
	return nil
}

func (r *TxRunner) RunSale(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	invRepo repository.InventoryRepository,
	saleRepo repository.SaleRepository,
) error) error {
	prodSnap, invSnap, saleSnap := r.Products.snapshot(), r.Inventory.snapshot(), r.Sales.snapshot()
	if err := fn(r.Products, r.Inventory, r.Sales); err != nil {
		r.Products.byID, r.Inventory.byProduct, r.Sales.byID = prodSnap, invSnap, saleSnap
		return err
	}
	return nil
}

// ── Dobles de notificación ────────────────────────────────────────────────────

// AlertCall registra una invocación a LowStock.
type AlertCall struct {
	ProductID string
	Remaining int64
}

// SpyAlerts doble del AlertNotifier que registra cada invocación.
type SpyAlerts struct {
	Calls []AlertCall
}

func (s *SpyAlerts) LowStock(product *entity.Product, remaining int64) {
	s.Calls = append(s.Calls, AlertCall{ProductID: product.ID, Remaining: remaining})
}

// SpyMailer doble del EmailSender que registra cada mensaje. Con Err fijado,
// Send falla con ese error.
type SpyMailer struct {
	Sent []notification.EmailMessage
	Err  error
}

func (s *SpyMailer) Send(msg notification.EmailMessage) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, msg)
	return nil
}

// StubSettings doble del proveedor de settings con un documento fijo.
type StubSettings struct {
	S *entity.Settings
}

func (s *StubSettings) Get() (*entity.Settings, error) {
	cp := *s.S
	return &cp, nil
}
