package dto

import "time"

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login. CompanyID es opcional: sin ella se usa la
// primera membresía activa del usuario.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	CompanyID string `json:"company_id" validate:"omitempty,uuid"`
}

// LoginResponse token de acceso de la empresa activa más refresh token.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	CompanyID    string       `json:"company_id"`
	Role         string       `json:"role"`
	User         UserResponse `json:"user"`
}

// RefreshRequest canje de refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	CompanyID    string `json:"company_id" validate:"omitempty,uuid"`
}

// SwitchCompanyRequest cambio de empresa activa.
type SwitchCompanyRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
}

// SessionResponse token emitido para la nueva empresa activa.
type SessionResponse struct {
	Token     string `json:"token"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}
