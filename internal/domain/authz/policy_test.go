package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

func TestCanPerform_AdminSiemprePuede(t *testing.T) {
	// Incluso con todos los flags apagados.
	s := &entity.Settings{}
	for _, action := range []authz.Action{
		authz.ActionSetQuantity,
		authz.ActionDecreaseQuantity,
		authz.ActionEditDescription,
		authz.ActionEditAlertLimit,
		authz.ActionAdjustCredit,
		authz.ActionDeleteSale,
		authz.ActionViewReports,
		authz.ActionPurgeNotifications,
		authz.ActionManageSettings,
		authz.ActionManageUsers,
	} {
		assert.True(t, authz.CanPerform(entity.RoleAdmin, action, s), string(action))
	}
}

func TestCanPerform_ManagerSegunFlags(t *testing.T) {
	tests := []struct {
		name     string
		action   authz.Action
		settings entity.Settings
		want     bool
	}{
		{"editar inventario habilitado", authz.ActionSetQuantity, entity.Settings{ManagerCanEditInventory: true}, true},
		{"editar inventario deshabilitado", authz.ActionSetQuantity, entity.Settings{}, false},
		{"incrementar sigue el mismo flag", authz.ActionIncrementQuantity, entity.Settings{ManagerCanEditInventory: true}, true},
		{"editar producto siempre permitido", authz.ActionEditProduct, entity.Settings{}, true},
		{"descripción habilitada", authz.ActionEditDescription, entity.Settings{ManagerCanEditDescription: true}, true},
		{"descripción deshabilitada", authz.ActionEditDescription, entity.Settings{}, false},
		{"límite de alerta habilitado", authz.ActionEditAlertLimit, entity.Settings{ManagerCanEditAlertLimit: true}, true},
		{"límite de alerta deshabilitado", authz.ActionEditAlertLimit, entity.Settings{}, false},
		{"reportes habilitados", authz.ActionViewReports, entity.Settings{ManagerCanViewReports: true}, true},
		{"reportes deshabilitados", authz.ActionViewReports, entity.Settings{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := authz.CanPerform(entity.RoleManager, tt.action, &tt.settings)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Las operaciones exclusivas del admin nunca se habilitan por flag.
func TestCanPerform_ManagerNuncaEnExclusivasDeAdmin(t *testing.T) {
	s := &entity.Settings{
		ManagerCanEditInventory:   true,
		ManagerCanEditDescription: true,
		ManagerCanViewReports:     true,
		ManagerCanEditAlertLimit:  true,
	}
	for _, action := range []authz.Action{
		authz.ActionDecreaseQuantity,
		authz.ActionDeleteProduct,
		authz.ActionAdjustCredit,
		authz.ActionDeleteSale,
		authz.ActionPurgeNotifications,
		authz.ActionManageSettings,
		authz.ActionManageUsers,
	} {
		assert.False(t, authz.CanPerform(entity.RoleManager, action, s), string(action))
	}
}

func TestCanPerform_RolDesconocidoNoPuedeNada(t *testing.T) {
	s := &entity.Settings{ManagerCanEditInventory: true}
	assert.False(t, authz.CanPerform("", authz.ActionSetQuantity, s))
	assert.False(t, authz.CanPerform("vendedor", authz.ActionEditProduct, s))
}
