package entity

import "time"

// Acciones acotadas por el plan.
const (
	ActionAddUser          = "add_user"
	ActionAddFramework     = "add_framework"
	ActionPublishFramework = "publish_framework"
	ActionAddClient        = "add_client"
)

// ValidLimitAction informa si action es una acción acotada conocida.
func ValidLimitAction(action string) bool {
	switch action {
	case ActionAddUser, ActionAddFramework, ActionPublishFramework, ActionAddClient:
		return true
	}
	return false
}

// UsageCounter uso actual de una acción acotada (consultado, nunca mutado por el gate).
type UsageCounter struct {
	CompanyID string
	Action    string
	Current   int
}

// CompanyPlan plan vigente de la empresa con sus límites por acción.
type CompanyPlan struct {
	CompanyID  string
	PlanCode   string
	ExpiresAt  *time.Time // nil = sin vencimiento
	GraceUntil *time.Time // período de gracia tras vencer o exceder
	Limits     map[string]int
}

// Limit devuelve el techo de la acción; ok=false significa ilimitado.
func (p *CompanyPlan) Limit(action string) (int, bool) {
	if p == nil || p.Limits == nil {
		return 0, false
	}
	n, ok := p.Limits[action]
	return n, ok
}
