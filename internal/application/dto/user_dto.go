package dto

import "time"

// RegisterRequest entrada para registrar un usuario. Role vacío = manager.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de sesión + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// PasswordResetRequest solicita el correo de restablecimiento.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest consuma un token de restablecimiento.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// UpdateRoleRequest cambia el rol de un usuario (panel admin).
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse     `json:"items"`
	Page  CursorPageResponse `json:"page"`
}
