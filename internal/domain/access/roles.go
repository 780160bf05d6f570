// Package access concentra la resolución de capacidades del principal en la
// empresa activa. El resto de la aplicación consume solo RoleSummary y las
// decisiones de los gates; nunca re-deriva roles a partir de la membresía.
package access

import "github.com/jhoicas/businessos-api/internal/domain/entity"

// RoleFacts hechos crudos obtenidos por las consultas del resolver.
// Un hecho desconocido (consulta fallida) se representa como ausente.
type RoleFacts struct {
	Membership   *entity.Membership
	CoachProfile *entity.CoachProfile
	CoachingOrg  *entity.CoachingOrg
	Manager      *entity.CoachingManager
	Engagement   *entity.CoachingEngagement
}

// RoleSummary conjunto cerrado de capacidades con nombre.
type RoleSummary struct {
	IsCompanyAdmin        bool `json:"is_company_admin"`
	IsSiteAdmin           bool `json:"is_site_admin"`
	IsSuperAdmin          bool `json:"is_super_admin"`
	HasFinanceAccess      bool `json:"has_finance_access"`
	IsCoachLike           bool `json:"is_coach_like"`
	CompanyHasCoachingOrg bool `json:"company_has_coaching_org"`
	IsOrgAdmin            bool `json:"is_org_admin"`
	IsManager             bool `json:"is_manager"`
	IsMember              bool `json:"is_member"`
	ShowCoachingSection   bool `json:"show_coaching_section"`
}

// IsAdmin company_admin o superior.
func (s RoleSummary) IsAdmin() bool {
	return s.IsCompanyAdmin || s.IsSiteAdmin || s.IsSuperAdmin
}

// ResolveRoles combina los hechos en el resumen de roles. Es determinista y no falla.
func ResolveRoles(f RoleFacts) RoleSummary {
	var s RoleSummary

	if f.Membership.IsActive() {
		switch f.Membership.Role {
		case entity.RoleSuperAdmin:
			s.IsSuperAdmin = true
			s.IsSiteAdmin = true
			s.IsCompanyAdmin = true
		case entity.RoleSiteAdmin:
			s.IsSiteAdmin = true
			s.IsCompanyAdmin = true
		case entity.RoleCompanyAdmin:
			s.IsCompanyAdmin = true
		}
		s.HasFinanceAccess = f.Membership.FinanceAccess || s.IsCompanyAdmin
	}

	s.IsCoachLike = f.CoachProfile != nil && f.CoachProfile.ArchivedAt == nil
	s.CompanyHasCoachingOrg = f.CoachingOrg != nil

	profileIsOrgAdmin := s.IsCoachLike && f.CoachProfile.Role == entity.CoachRoleOrgAdmin
	s.IsOrgAdmin = profileIsOrgAdmin || (s.CompanyHasCoachingOrg && s.IsCompanyAdmin)

	// El registro de manager solo cuenta si está acotado a la organización propia.
	s.IsManager = s.CompanyHasCoachingOrg && f.Manager != nil && f.Manager.OrgID == f.CoachingOrg.ID
	s.IsMember = f.Engagement != nil

	s.ShowCoachingSection = s.IsSiteAdmin || s.IsSuperAdmin || s.IsCoachLike ||
		s.CompanyHasCoachingOrg || s.IsMember
	return s
}
