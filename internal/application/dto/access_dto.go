package dto

import "github.com/jhoicas/businessos-api/internal/domain/access"

// RolesResponse resumen de capacidades del principal en la empresa activa.
type RolesResponse struct {
	CompanyID string             `json:"company_id"`
	Roles     access.RoleSummary `json:"roles"`
}

// ModuleAccessResponse decisión tri-estado del gate de módulos.
type ModuleAccessResponse struct {
	Module string `json:"module"`
	access.ModuleAccess
}

// LimitResponse decisión del gate de límites para una acción.
type LimitResponse struct {
	Action  string `json:"action"`
	Usage   int    `json:"usage"`
	Limit   *int   `json:"limit"`
	Loading bool   `json:"loading"`
	access.LimitDecision
}
