package entity

import "time"

// Roles de membresía. site_admin y super_admin siempre prevalecen sobre company_admin.
const (
	RoleMember       = "member"
	RoleCompanyAdmin = "company_admin"
	RoleSiteAdmin    = "site_admin"
	RoleSuperAdmin   = "super_admin"
)

// Estados de membresía. Nunca se borra: se cambia el estado.
const (
	MembershipActive   = "active"
	MembershipInactive = "inactive"
	MembershipInvited  = "invited"
)

// Membership vincula un User con una Company con un rol y el flag de acceso a finanzas.
type Membership struct {
	ID            string
	UserID        string
	CompanyID     string
	Role          string
	FinanceAccess bool
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive informa si la membresía otorga acceso.
func (m *Membership) IsActive() bool {
	return m != nil && m.Status == MembershipActive
}

// ValidRole informa si role es uno de los roles de membresía conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleCompanyAdmin, RoleSiteAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// MembershipWithCompany fila de listado "mis empresas".
type MembershipWithCompany struct {
	Membership
	CompanyName string
}
