package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa; el creador queda como company_admin.
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	FinanceMode string `json:"finance_mode" validate:"omitempty,oneof=builtin_books external_reporting"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	FinanceMode string          `json:"finance_mode"`
	Status      string          `json:"status"`
	Modules     map[string]bool `json:"modules,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MembershipResponse membresía del principal con el nombre de la empresa.
type MembershipResponse struct {
	CompanyID     string `json:"company_id"`
	CompanyName   string `json:"company_name"`
	Role          string `json:"role"`
	FinanceAccess bool   `json:"finance_access"`
	Status        string `json:"status"`
}

// SetModuleRequest activación de un módulo premium.
type SetModuleRequest struct {
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// InviteMemberRequest invitación por email de un usuario existente.
type InviteMemberRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Role          string `json:"role" validate:"omitempty,oneof=member company_admin"`
	FinanceAccess bool   `json:"finance_access"`
}

// UpdateMemberRequest cambios de rol, flag de finanzas o estado (campos opcionales).
type UpdateMemberRequest struct {
	Role          *string `json:"role" validate:"omitempty,oneof=member company_admin site_admin super_admin"`
	FinanceAccess *bool   `json:"finance_access"`
	Status        *string `json:"status" validate:"omitempty,oneof=active inactive invited"`
}

// MemberResponse membresía dentro de la empresa activa.
type MemberResponse struct {
	UserID        string    `json:"user_id"`
	CompanyID     string    `json:"company_id"`
	Role          string    `json:"role"`
	FinanceAccess bool      `json:"finance_access"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}
