package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/apptest"
	"github.com/tu-usuario/pos-inventario/internal/application/catalog"
	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

var (
	admin   = authz.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	manager = authz.Actor{UserID: "u-manager", Role: entity.RoleManager}
)

type fixture struct {
	products *apptest.MemProducts
	inv      *apptest.MemInventory
	alerts   *apptest.SpyAlerts
	settings *apptest.StubSettings
	uc       *catalog.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	products := apptest.NewMemProducts()
	inv := apptest.NewMemInventory()
	tx := apptest.NewTxRunner(products, inv, apptest.NewMemSales())
	alerts := &apptest.SpyAlerts{}
	stub := &apptest.StubSettings{S: entity.DefaultSettings("alertas@test")}
	return &fixture{
		products: products, inv: inv, alerts: alerts, settings: stub,
		uc: catalog.NewUseCase(tx, products, inv, stub, alerts),
	}
}

func str(s string) *string { return &s }

func i64(n int64) *int64 { return &n }

func dec(d decimal.Decimal) *decimal.Decimal { return &d }

func TestAddProduct_SiembraInventario(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: " SKU-1 ", Name: " Tornillo ",
		Price: decimal.NewFromInt(10), AlertLimit: 8, InitialQuantity: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", out.SKU)
	assert.Equal(t, "Tornillo", out.Name)
	assert.Equal(t, int64(8), out.AlertLimit)

	rec, err := f.inv.GetByProductID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, rec, "el alta siembra el registro de existencias")
	assert.Equal(t, int64(20), rec.Quantity)
	assert.Equal(t, "SKU-1", rec.SKU)
	assert.Equal(t, "Tornillo", rec.ProductName)
}

func TestAddProduct_LimiteDeAlertaPorDefecto(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Tornillo", Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(entity.DefaultAlertLimit), out.AlertLimit)
}

// Un SKU duplicado rechaza el alta completa: tampoco queda registro de
// existencias huérfano.
func TestAddProduct_SKUDuplicadoEsAtomico(t *testing.T) {
	f := newFixture(t)
	first, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Tornillo", Price: decimal.NewFromInt(10), InitialQuantity: 20,
	})
	require.NoError(t, err)

	_, err = f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Otro", Price: decimal.NewFromInt(5), InitialQuantity: 7,
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	count, _ := f.products.Count()
	assert.Equal(t, int64(1), count)
	rec, _ := f.inv.GetByProductID(first.ID)
	require.NotNil(t, rec)
	assert.Equal(t, int64(20), rec.Quantity, "el registro original no se toca")
}

func TestAddProduct_Validacion(t *testing.T) {
	f := newFixture(t)
	cases := []dto.CreateProductRequest{
		{SKU: "", Name: "Tornillo"},
		{SKU: "SKU-1", Name: "   "},
		{SKU: "SKU-1", Name: "Tornillo", Price: decimal.NewFromInt(-1)},
		{SKU: "SKU-1", Name: "Tornillo", InitialQuantity: -1},
	}
	for _, in := range cases {
		_, err := f.uc.AddProduct(context.Background(), admin, in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestAddProduct_AlertaInicial(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Tornillo", Price: decimal.NewFromInt(10),
		AlertLimit: 5, InitialQuantity: 2,
	})
	require.NoError(t, err)
	require.Len(t, f.alerts.Calls, 1)
	assert.Equal(t, out.ID, f.alerts.Calls[0].ProductID)
	assert.Equal(t, int64(2), f.alerts.Calls[0].Remaining)
}

func TestEditProduct_GatesPorCampo(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Tornillo", Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	// Con los defaults el manager edita producto pero no descripción ni límite.
	_, err = f.uc.EditProduct(context.Background(), manager, out.ID, dto.UpdateProductRequest{
		Description: str("galvanizado"),
	})
	assert.ErrorIs(t, err, domain.ErrPermission)

	_, err = f.uc.EditProduct(context.Background(), manager, out.ID, dto.UpdateProductRequest{
		AlertLimit: i64(3),
	})
	assert.ErrorIs(t, err, domain.ErrPermission)

	res, err := f.uc.EditProduct(context.Background(), manager, out.ID, dto.UpdateProductRequest{
		Price: dec(decimal.NewFromInt(12)),
	})
	require.NoError(t, err)
	assert.True(t, res.Price.Equal(decimal.NewFromInt(12)))

	// Con los flags activos los mismos campos pasan.
	f.settings.S.ManagerCanEditDescription = true
	f.settings.S.ManagerCanEditAlertLimit = true
	res, err = f.uc.EditProduct(context.Background(), manager, out.ID, dto.UpdateProductRequest{
		Description: str("galvanizado"),
		AlertLimit:  i64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "galvanizado", res.Description)
	assert.Equal(t, int64(3), res.AlertLimit)
}

// Renombrar o cambiar el SKU refresca la copia desnormalizada en existencias
// dentro de la misma transacción.
func TestEditProduct_RefrescaDenormalizacion(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Tornillo", Price: decimal.NewFromInt(10), InitialQuantity: 5,
	})
	require.NoError(t, err)

	_, err = f.uc.EditProduct(context.Background(), admin, out.ID, dto.UpdateProductRequest{
		SKU:  str("SKU-1B"),
		Name: str("Tornillo galvanizado"),
	})
	require.NoError(t, err)

	rec, _ := f.inv.GetByProductID(out.ID)
	require.NotNil(t, rec)
	assert.Equal(t, "SKU-1B", rec.SKU)
	assert.Equal(t, "Tornillo galvanizado", rec.ProductName)
	assert.Equal(t, int64(5), rec.Quantity)
}

// El límite de alerta editado nunca baja de 1: un 0 almacenado dejaría al
// producto sin marca de stock bajo en el listado mientras la alerta sí
// dispara con el default.
func TestEditProduct_LimiteDeAlertaMinimoUno(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Tornillo", Price: decimal.NewFromInt(10), AlertLimit: 5,
	})
	require.NoError(t, err)

	_, err = f.uc.EditProduct(context.Background(), admin, out.ID, dto.UpdateProductRequest{AlertLimit: i64(0)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.EditProduct(context.Background(), admin, out.ID, dto.UpdateProductRequest{AlertLimit: i64(-3)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := f.uc.GetProduct(out.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.AlertLimit, "el límite vigente no se toca")

	res, err := f.uc.EditProduct(context.Background(), admin, out.ID, dto.UpdateProductRequest{AlertLimit: i64(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AlertLimit)
}

func TestEditProduct_SKUDeOtroProducto(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Tornillo", Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	other, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: "SKU-2", Name: "Tuerca", Price: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	_, err = f.uc.EditProduct(context.Background(), admin, other.ID, dto.UpdateProductRequest{
		SKU: str("SKU-1"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEditProduct_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.EditProduct(context.Background(), admin, "no-existe", dto.UpdateProductRequest{
		Name: str("X"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct_SoloAdminYConservaInventario(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Tornillo", Price: decimal.NewFromInt(10), InitialQuantity: 9,
	})
	require.NoError(t, err)

	err = f.uc.DeleteProduct(context.Background(), manager, out.ID)
	assert.ErrorIs(t, err, domain.ErrPermission)

	require.NoError(t, f.uc.DeleteProduct(context.Background(), admin, out.ID))
	_, err = f.uc.GetProduct(out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rec, _ := f.inv.GetByProductID(out.ID)
	require.NotNil(t, rec, "el registro de existencias sobrevive a la baja")
	assert.Equal(t, int64(9), rec.Quantity)
}

func TestList_PaginacionPorNombre(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"Clavo", "Tornillo", "Tuerca"} {
		_, err := f.uc.AddProduct(context.Background(), admin, dto.CreateProductRequest{
			SKU: "SKU-" + name, Name: name, Price: decimal.NewFromInt(1),
		})
		require.NoError(t, err)
	}

	page1, err := f.uc.List("", 2)
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	assert.Equal(t, "Clavo", page1.Items[0].Name)
	assert.Equal(t, "Tornillo", page1.Items[1].Name)
	assert.Equal(t, int64(3), page1.Page.Total)
	require.False(t, page1.Page.IsLastPage)

	page2, err := f.uc.List(page1.Page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "Tuerca", page2.Items[0].Name)
	assert.True(t, page2.Page.IsLastPage)
}

func TestList_CursorInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.List("%%%no-base64%%%", 10)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
