package auth_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/apptest"
	"github.com/tu-usuario/pos-inventario/internal/application/auth"
	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/pkg/jwt"
	"github.com/tu-usuario/pos-inventario/pkg/logger"
)

const testSecret = "secreto-de-test"

type fixture struct {
	users *apptest.MemUsers
	mail  *apptest.SpyMailer
	uc    *auth.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := apptest.NewMemUsers()
	mail := &apptest.SpyMailer{}
	cfg := auth.Config{
		JWTSecret:    testSecret,
		Issuer:       "pos-inventario-test",
		ExpMinutes:   60,
		ResetBaseURL: "https://app.test/",
	}
	return &fixture{users: users, mail: mail, uc: auth.NewUseCase(users, mail, cfg, logger.Nop())}
}

func (f *fixture) register(t *testing.T, email, password string) *dto.UserResponse {
	t.Helper()
	out, err := f.uc.Register(dto.RegisterRequest{Email: email, Password: password, Name: "Usuario"})
	require.NoError(t, err)
	return out
}

func TestRegister_RolManagerPorDefecto(t *testing.T) {
	f := newFixture(t)
	out := f.register(t, "  Ana@Test.com  ", "secreta1")
	assert.Equal(t, "ana@test.com", out.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.RoleManager, out.Role)

	// El hash queda persistido, nunca la contraseña en claro.
	stored, err := f.users.GetByID(out.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "secreta1", stored.PasswordHash)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@test.com", "secreta1")
	_, err := f.uc.Register(dto.RegisterRequest{Email: "ANA@test.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validacion(t *testing.T) {
	f := newFixture(t)
	cases := []dto.RegisterRequest{
		{Email: "", Password: "secreta1"},
		{Email: "sin-arroba", Password: "secreta1"},
		{Email: "ana@test.com", Password: "corta"},
	}
	for _, in := range cases {
		_, err := f.uc.Register(in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@test.com", "secreta1")

	out, err := f.uc.Login(dto.LoginRequest{Email: "Ana@Test.com", Password: "secreta1"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@test.com", "secreta1")

	_, err := f.uc.Login(dto.LoginRequest{Email: "ana@test.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Login(dto.LoginRequest{Email: "nadie@test.com", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inexistente responde igual que clave errónea")
}

func TestSendPasswordReset_EnviaEnlace(t *testing.T) {
	f := newFixture(t)
	out := f.register(t, "ana@test.com", "secreta1")

	require.NoError(t, f.uc.SendPasswordReset(dto.PasswordResetRequest{Email: "ana@test.com"}))
	require.Len(t, f.mail.Sent, 1)
	msg := f.mail.Sent[0]
	assert.Equal(t, "ana@test.com", msg.To)

	link := msg.Fields["reset_link"]
	require.True(t, strings.HasPrefix(link, "https://app.test/reset-password?token="), link)

	// El token del enlace es un token de reset válido para ese usuario.
	token := strings.TrimPrefix(link, "https://app.test/reset-password?token=")
	userID, err := jwt.ParseReset(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, out.ID, userID)
}

// La respuesta no revela si el correo existe: sin usuario no hay envío pero
// tampoco error.
func TestSendPasswordReset_EmailDesconocido(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.uc.SendPasswordReset(dto.PasswordResetRequest{Email: "nadie@test.com"}))
	assert.Empty(t, f.mail.Sent)
}

func TestSendPasswordReset_FalloDeEnvioNoPropaga(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@test.com", "secreta1")
	f.mail.Err = errors.New("smtp caído")
	assert.NoError(t, f.uc.SendPasswordReset(dto.PasswordResetRequest{Email: "ana@test.com"}))
}

func TestResetPassword_Completo(t *testing.T) {
	f := newFixture(t)
	out := f.register(t, "ana@test.com", "secreta1")

	token, err := jwt.GenerateReset(testSecret, out.ID, "pos-inventario-test", 30)
	require.NoError(t, err)

	require.NoError(t, f.uc.ResetPassword(dto.ResetPasswordRequest{Token: token, NewPassword: "nueva-clave"}))

	_, err = f.uc.Login(dto.LoginRequest{Email: "ana@test.com", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "la clave anterior deja de valer")
	_, err = f.uc.Login(dto.LoginRequest{Email: "ana@test.com", Password: "nueva-clave"})
	assert.NoError(t, err)
}

// Un token de sesión no sirve para restablecer la contraseña.
func TestResetPassword_RechazaTokenDeSesion(t *testing.T) {
	f := newFixture(t)
	out := f.register(t, "ana@test.com", "secreta1")

	session, err := jwt.Generate(testSecret, out.ID, entity.RoleManager, "pos-inventario-test", 60)
	require.NoError(t, err)

	err = f.uc.ResetPassword(dto.ResetPasswordRequest{Token: session, NewPassword: "nueva-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateRole_SoloAdminYSinAutodegradacion(t *testing.T) {
	f := newFixture(t)
	target := f.register(t, "ana@test.com", "secreta1")
	adminActor := authz.Actor{UserID: "u-admin", Role: entity.RoleAdmin}

	_, err := f.uc.UpdateRole(authz.Actor{UserID: "u-m", Role: entity.RoleManager}, target.ID, dto.UpdateRoleRequest{Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrPermission)

	out, err := f.uc.UpdateRole(adminActor, target.ID, dto.UpdateRoleRequest{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)

	// El admin no puede quitarse su propio rol.
	_, err = f.uc.UpdateRole(authz.Actor{UserID: target.ID, Role: entity.RoleAdmin}, target.ID, dto.UpdateRoleRequest{Role: entity.RoleManager})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListUsers_SoloAdmin(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@test.com", "secreta1")
	f.register(t, "bruno@test.com", "secreta1")

	_, err := f.uc.ListUsers(authz.Actor{UserID: "u-m", Role: entity.RoleManager}, "", 10)
	assert.ErrorIs(t, err, domain.ErrPermission)

	out, err := f.uc.ListUsers(authz.Actor{UserID: "u-admin", Role: entity.RoleAdmin}, "", 10)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(2), out.Page.Total)
}
