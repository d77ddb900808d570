// Package auth implementa registro, login con JWT, restablecimiento de
// contraseña por correo y el panel de usuarios del admin.
package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pos-inventario/internal/application/dto"
	"github.com/tu-usuario/pos-inventario/internal/application/notification"
	"github.com/tu-usuario/pos-inventario/internal/domain"
	"github.com/tu-usuario/pos-inventario/internal/domain/authz"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
	"github.com/tu-usuario/pos-inventario/internal/domain/repository"
	"github.com/tu-usuario/pos-inventario/pkg/jwt"
	"github.com/tu-usuario/pos-inventario/pkg/logger"
	"github.com/tu-usuario/pos-inventario/pkg/pagination"
)

const resetTokenMinutes = 30

// Config parámetros de firma de tokens.
type Config struct {
	JWTSecret  string
	Issuer     string
	ExpMinutes int
	// ResetBaseURL prefijo del enlace de restablecimiento enviado por correo.
	ResetBaseURL string
}

// UseCase operaciones de autenticación y administración de usuarios.
type UseCase struct {
	repo repository.UserRepository
	mail notification.EmailSender
	cfg  Config
	log  *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(repo repository.UserRepository, mail notification.EmailSender, cfg Config, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, mail: mail, cfg: cfg, log: log}
}

// Register crea un usuario con contraseña hasheada. Sin rol explícito el
// usuario queda como manager; el rol admin solo lo asigna otro admin después.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") || len(in.Password) < 6 {
		return nil, domain.ErrValidation
	}
	existing, err := uc.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         entity.RoleManager,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica credenciales y emite el token de sesión con el rol embebido.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	role := entity.NormalizeRole(user.Role)
	token, err := jwt.Generate(uc.cfg.JWTSecret, user.ID, role, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	out.Role = role
	return &dto.LoginResponse{Token: token, User: *out}, nil
}

// SendPasswordReset emite un token de un solo propósito y lo envía por
// correo. Para no revelar qué correos existen, la operación responde igual
// exista o no el usuario; el fallo del envío solo se loguea.
func (uc *UseCase) SendPasswordReset(in dto.PasswordResetRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return domain.ErrValidation
	}
	user, err := uc.repo.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := jwt.GenerateReset(uc.cfg.JWTSecret, user.ID, uc.cfg.Issuer, resetTokenMinutes)
	if err != nil {
		return err
	}
	link := strings.TrimRight(uc.cfg.ResetBaseURL, "/") + "/reset-password?token=" + token
	err = uc.mail.Send(notification.EmailMessage{
		To:      user.Email,
		Subject: "Restablecimiento de contraseña",
		Body:    "Para restablecer tu contraseña, abre el siguiente enlace: " + link,
		Fields: map[string]string{
			"reset_link": link,
			"user_name":  user.Name,
		},
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("fallo el envío del correo de restablecimiento")
	}
	return nil
}

// ResetPassword consuma un token de restablecimiento y fija la nueva contraseña.
func (uc *UseCase) ResetPassword(in dto.ResetPasswordRequest) error {
	if len(in.NewPassword) < 6 {
		return domain.ErrValidation
	}
	userID, err := jwt.ParseReset(uc.cfg.JWTSecret, in.Token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(user.ID, string(hash))
}

// GetUser devuelve el perfil de un usuario.
func (uc *UseCase) GetUser(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := toUserResponse(user)
	out.Role = entity.NormalizeRole(user.Role)
	return out, nil
}

// UpdateRole cambia el rol de un usuario. Solo admin, y ningún admin puede
// degradarse a sí mismo (evita dejar el sistema sin administradores por accidente).
func (uc *UseCase) UpdateRole(actor authz.Actor, userID string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrPermission
	}
	role := entity.NormalizeRole(in.Role)
	if actor.UserID == userID && role != entity.RoleAdmin {
		return nil, domain.ErrValidation
	}
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.repo.UpdateRole(userID, role); err != nil {
		return nil, err
	}
	user.Role = role
	return toUserResponse(user), nil
}

// ListUsers devuelve una página de usuarios ordenada por (rol, id). Solo admin.
func (uc *UseCase) ListUsers(actor authz.Actor, cursor string, limit int) (*dto.UserListResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrPermission
	}
	limit = pagination.ClampSize(limit)
	cur, err := pagination.Decode(cursor)
	if err != nil {
		return nil, domain.ErrValidation
	}
	afterRole, afterID := "", ""
	if cur != nil {
		afterRole, afterID = cur.Key, cur.ID
	}

	users, err := uc.repo.List(afterRole, afterID, limit+1)
	if err != nil {
		return nil, err
	}
	isLast := len(users) <= limit
	if !isLast {
		users = users[:limit]
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}

	out := &dto.UserListResponse{
		Items: make([]dto.UserResponse, 0, len(users)),
		Page:  dto.CursorPageResponse{IsLastPage: isLast, Total: total},
	}
	for _, u := range users {
		r := toUserResponse(u)
		r.Role = entity.NormalizeRole(u.Role)
		out.Items = append(out.Items, *r)
	}
	if !isLast && len(users) > 0 {
		last := users[len(users)-1]
		out.Page.NextCursor = pagination.Cursor{Key: last.Role, ID: last.ID}.Encode()
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
