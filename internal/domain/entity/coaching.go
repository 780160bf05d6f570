package entity

import "time"

// CoachRoleOrgAdmin rol de perfil de coach que administra la organización de coaching.
const (
	CoachRoleOrgAdmin = "org_admin"
	CoachRoleCoach    = "coach"
)

// CoachProfile perfil de coach de un usuario dentro del dominio de coaching de una empresa.
type CoachProfile struct {
	ID         string
	UserID     string
	CompanyID  string
	Role       string // org_admin | coach
	ArchivedAt *time.Time
}

// CoachingOrg una empresa actuando como coach/consultora de otras empresas.
type CoachingOrg struct {
	ID        string
	CompanyID string
	Name      string
	Status    string
}

// CoachingManager registro de manager dentro de una organización de coaching.
type CoachingManager struct {
	ID     string
	OrgID  string
	UserID string
	Status string
}

// CoachingEngagement vincula una empresa cliente (miembro) con la organización de coaching de otra.
type CoachingEngagement struct {
	ID              string
	OrgID           string
	MemberCompanyID string
	Status          string
	CreatedAt       time.Time
}
