package customer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/apptest"
	"github.com/tu-usuario/pos-inventario/internal/application/customer"
	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

var (
	admin   = authz.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	manager = authz.Actor{UserID: "u-manager", Role: entity.RoleManager}
)

func newUseCase() *customer.UseCase {
	stub := &apptest.StubSettings{S: entity.DefaultSettings("alertas@test")}
	return customer.NewUseCase(apptest.NewMemCustomers(), stub)
}

func str(s string) *string { return &s }

func i64(n int64) *int64 { return &n }

func TestCreate_RecortaNombre(t *testing.T) {
	uc := newUseCase()
	out, err := uc.Create(dto.CreateCustomerRequest{Name: "  Ferretería El Clavo  ", Company: " El Clavo SA "})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería El Clavo", out.Name)
	assert.Equal(t, "El Clavo SA", out.Company)
	assert.Zero(t, out.Credit)
}

func TestCreate_NombreObligatorio(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Create(dto.CreateCustomerRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_CreditoInicialNegativo(t *testing.T) {
	uc := newUseCase()
	out, err := uc.Create(dto.CreateCustomerRequest{Name: "Moroso", Credit: -500})
	require.NoError(t, err)
	assert.Equal(t, int64(-500), out.Credit, "un saldo negativo representa deuda")
}

func TestUpdate_CreditoSoloAdmin(t *testing.T) {
	uc := newUseCase()
	out, err := uc.Create(dto.CreateCustomerRequest{Name: "Cliente", Credit: 100})
	require.NoError(t, err)

	_, err = uc.Update(manager, out.ID, dto.UpdateCustomerRequest{Credit: i64(0)})
	assert.ErrorIs(t, err, domain.ErrPermission)

	// El manager sí edita nombre y empresa.
	res, err := uc.Update(manager, out.ID, dto.UpdateCustomerRequest{Name: str("Cliente B")})
	require.NoError(t, err)
	assert.Equal(t, "Cliente B", res.Name)
	assert.Equal(t, int64(100), res.Credit)

	res, err = uc.Update(admin, out.ID, dto.UpdateCustomerRequest{Credit: i64(250)})
	require.NoError(t, err)
	assert.Equal(t, int64(250), res.Credit)
}

func TestUpdate_NoExiste(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Update(admin, "no-existe", dto.UpdateCustomerRequest{Name: str("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustCredit_SumaDelta(t *testing.T) {
	uc := newUseCase()
	out, err := uc.Create(dto.CreateCustomerRequest{Name: "Cliente", Credit: 100})
	require.NoError(t, err)

	res, err := uc.AdjustCredit(admin, out.ID, dto.AdjustCreditRequest{Delta: -30})
	require.NoError(t, err)
	assert.Equal(t, int64(70), res.Credit)

	res, err = uc.AdjustCredit(admin, out.ID, dto.AdjustCreditRequest{Delta: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(120), res.Credit)
}

func TestAdjustCredit_Reglas(t *testing.T) {
	uc := newUseCase()
	out, err := uc.Create(dto.CreateCustomerRequest{Name: "Cliente"})
	require.NoError(t, err)

	_, err = uc.AdjustCredit(manager, out.ID, dto.AdjustCreditRequest{Delta: 10})
	assert.ErrorIs(t, err, domain.ErrPermission)

	_, err = uc.AdjustCredit(admin, out.ID, dto.AdjustCreditRequest{Delta: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.AdjustCredit(admin, "no-existe", dto.AdjustCreditRequest{Delta: 10})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	uc := newUseCase()
	out, err := uc.Create(dto.CreateCustomerRequest{Name: "Cliente"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(out.ID))
	_, err = uc.Get(out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}

func TestList_PaginacionPorNombre(t *testing.T) {
	uc := newUseCase()
	for _, name := range []string{"Ana", "Bruno", "Carla"} {
		_, err := uc.Create(dto.CreateCustomerRequest{Name: name})
		require.NoError(t, err)
	}

	page1, err := uc.List("", 2)
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	assert.Equal(t, "Ana", page1.Items[0].Name)
	assert.Equal(t, "Bruno", page1.Items[1].Name)
	require.False(t, page1.Page.IsLastPage)

	page2, err := uc.List(page1.Page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "Carla", page2.Items[0].Name)
	assert.True(t, page2.Page.IsLastPage)
}
