package notification_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/apptest"
	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/notification"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/pkg/logger"
)

var (
	admin   = authz.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	manager = authz.Actor{UserID: "u-manager", Role: entity.RoleManager}
)

func seed(t *testing.T, repo *apptest.MemNotifications, n int) {
	t.Helper()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Create(&entity.Notification{
			ID:        fmt.Sprintf("n%02d", i),
			Message:   fmt.Sprintf("mensaje %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}
}

func newUseCase(repo *apptest.MemNotifications) *notification.UseCase {
	stub := &apptest.StubSettings{S: entity.DefaultSettings("alertas@test")}
	return notification.NewUseCase(repo, stub)
}

// Listar marca como leídas las pendientes del rol que consulta; la bandera del
// otro rol no se toca, y el conteo reportado es el previo al marcado.
func TestList_MarcaSoloElRolDelActor(t *testing.T) {
	repo := apptest.NewMemNotifications()
	seed(t, repo, 3)
	uc := newUseCase(repo)

	out, err := uc.List(admin, "", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Unread, "el conteo es el previo al marcado")
	require.Len(t, out.Items, 3)

	for _, n := range repo.All() {
		assert.True(t, n.AdminRead)
		assert.False(t, n.ManagerRead, "la bandera del manager queda intacta")
	}

	out, err = uc.List(admin, "", 10)
	require.NoError(t, err)
	assert.Zero(t, out.Unread)

	out, err = uc.List(manager, "", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Unread, "el manager conserva sus pendientes")
}

func TestList_RecientesPrimeroYPaginado(t *testing.T) {
	repo := apptest.NewMemNotifications()
	seed(t, repo, 5)
	uc := newUseCase(repo)

	page1, err := uc.List(admin, "", 2)
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	assert.Equal(t, "n04", page1.Items[0].ID)
	assert.Equal(t, "n03", page1.Items[1].ID)
	assert.Equal(t, int64(5), page1.Page.Total)
	require.False(t, page1.Page.IsLastPage)

	page2, err := uc.List(admin, page1.Page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
	assert.Equal(t, "n02", page2.Items[0].ID)
	assert.Equal(t, "n01", page2.Items[1].ID)
}

func TestPurge_SoloAdminYRespetaCorte(t *testing.T) {
	repo := apptest.NewMemNotifications()
	seed(t, repo, 3)
	uc := newUseCase(repo)

	_, err := uc.Purge(manager, dto.PurgeNotificationsRequest{Before: "2026-09-01"})
	assert.ErrorIs(t, err, domain.ErrPermission)

	out, err := uc.Purge(admin, dto.PurgeNotificationsRequest{Before: "2026-08-01"})
	require.NoError(t, err)
	assert.Zero(t, out.Deleted, "nada es anterior a la medianoche del corte")

	out, err = uc.Purge(admin, dto.PurgeNotificationsRequest{Before: "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Deleted)
	count, _ := repo.Count()
	assert.Zero(t, count)
}

func TestPurge_FechaInvalida(t *testing.T) {
	uc := newUseCase(apptest.NewMemNotifications())
	_, err := uc.Purge(admin, dto.PurgeNotificationsRequest{Before: "31/08/2026"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPipeline_AlertaSoloBajoElLimite(t *testing.T) {
	repo := apptest.NewMemNotifications()
	mail := &apptest.SpyMailer{}
	stub := &apptest.StubSettings{S: entity.DefaultSettings("alertas@test")}
	p := notification.NewPipeline(repo, stub, mail, logger.Nop())
	product := &entity.Product{ID: "p1", SKU: "SKU-1", Name: "Tornillo", AlertLimit: 5}

	p.LowStock(product, 5)
	count, _ := repo.Count()
	assert.Zero(t, count, "en el límite no hay alerta")
	assert.Empty(t, mail.Sent)

	p.LowStock(product, 4)
	count, _ = repo.Count()
	assert.Equal(t, int64(1), count)
	require.Len(t, mail.Sent, 1)
	msg := mail.Sent[0]
	assert.Equal(t, "alertas@test", msg.To)
	assert.Contains(t, msg.Body, "Tornillo")
	assert.Contains(t, msg.Body, "SKU-1")
	assert.Equal(t, "4", msg.Fields["current_quantity"])
	assert.Equal(t, "5", msg.Fields["alert_limit"])

	// La notificación nace sin leer para ambos roles.
	n := repo.All()[0]
	assert.False(t, n.AdminRead)
	assert.False(t, n.ManagerRead)
}

func TestPipeline_LimiteCeroUsaElDefault(t *testing.T) {
	repo := apptest.NewMemNotifications()
	mail := &apptest.SpyMailer{}
	stub := &apptest.StubSettings{S: entity.DefaultSettings("alertas@test")}
	p := notification.NewPipeline(repo, stub, mail, logger.Nop())
	product := &entity.Product{ID: "p1", SKU: "SKU-1", Name: "Tornillo"} // AlertLimit 0

	p.LowStock(product, entity.DefaultAlertLimit)
	count, _ := repo.Count()
	assert.Zero(t, count)

	p.LowStock(product, entity.DefaultAlertLimit-1)
	count, _ = repo.Count()
	assert.Equal(t, int64(1), count)
}

// El fallo del correo no impide registrar la notificación ni propaga error.
func TestPipeline_FalloDeCorreoNoPropaga(t *testing.T) {
	repo := apptest.NewMemNotifications()
	mail := &apptest.SpyMailer{Err: errors.New("smtp caído")}
	stub := &apptest.StubSettings{S: entity.DefaultSettings("alertas@test")}
	p := notification.NewPipeline(repo, stub, mail, logger.Nop())

	p.LowStock(&entity.Product{ID: "p1", SKU: "SKU-1", Name: "Tornillo", AlertLimit: 5}, 1)
	count, _ := repo.Count()
	assert.Equal(t, int64(1), count)
}
