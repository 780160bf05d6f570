package dto

import "time"

// NavPreferences secciones de navegación expandidas.
type NavPreferences struct {
	Sections []string `json:"sections"`
}

// AddClientRequest alta de una empresa cliente en la organización de coaching.
type AddClientRequest struct {
	MemberCompanyID string `json:"member_company_id" validate:"required,uuid"`
}

// EngagementResponse engagement de coaching creado.
type EngagementResponse struct {
	ID              string    `json:"id"`
	OrgID           string    `json:"org_id"`
	MemberCompanyID string    `json:"member_company_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// AIStatusResponse disponibilidad del gateway de IA.
type AIStatusResponse struct {
	Ready  bool   `json:"ready"`
	Detail string `json:"detail,omitempty"`
}
