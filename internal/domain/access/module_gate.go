package access

import "github.com/jhoicas/businessos-api/internal/domain/entity"

// Motivos de denegación de un módulo.
const (
	ReasonNotEnabled   = "not_enabled"
	ReasonNoPermission = "no_permission"
)

// ModuleAccess decisión tri-estado: permitido, cargando, o denegado con motivo.
type ModuleAccess struct {
	HasAccess      bool    `json:"has_access"`
	Loading        bool    `json:"loading"`
	NoAccessReason *string `json:"no_access_reason"`
}

// Reason devuelve el motivo de denegación o "" si no hay.
func (m ModuleAccess) Reason() string {
	if m.NoAccessReason == nil {
		return ""
	}
	return *m.NoAccessReason
}

var coreModules = map[string]struct{}{
	entity.ModuleTasks:     {},
	entity.ModuleProjects:  {},
	entity.ModuleCalendar:  {},
	entity.ModuleNotes:     {},
	entity.ModuleDocuments: {},
	entity.ModuleDashboard: {},
	entity.ModuleSettings:  {},
}

var premiumModules = map[string]struct{}{
	entity.ModuleCRM:       {},
	entity.ModuleSales:     {},
	entity.ModuleCoaching:  {},
	entity.ModuleFinance:   {},
	entity.ModuleForms:     {},
	entity.ModuleWorkflows: {},
	entity.ModuleLMS:       {},
}

// modulePermissions ACL por rol de los módulos premium que la requieren.
var modulePermissions = map[string]func(RoleSummary) bool{
	entity.ModuleFinance:  func(s RoleSummary) bool { return s.HasFinanceAccess },
	entity.ModuleCoaching: func(s RoleSummary) bool { return s.ShowCoachingSection },
}

// IsCoreModule informa si key pertenece al conjunto fijo de módulos core.
func IsCoreModule(key string) bool {
	_, ok := coreModules[key]
	return ok
}

// IsPremiumModule informa si key es un módulo premium conocido.
func IsPremiumModule(key string) bool {
	_, ok := premiumModules[key]
	return ok
}

// EvaluateModule decide el acceso a un módulo para una membresía válida.
// entitlements es el mapa módulo → habilitado de la empresa; una clave ausente
// (o desconocida) se deniega con not_enabled.
func EvaluateModule(key string, summary RoleSummary, entitlements map[string]bool, loading bool) ModuleAccess {
	if loading {
		return ModuleAccess{Loading: true}
	}
	if IsCoreModule(key) {
		return ModuleAccess{HasAccess: true}
	}
	if !IsPremiumModule(key) || !entitlements[key] {
		return denied(ReasonNotEnabled)
	}
	if allowed, ok := modulePermissions[key]; ok && !allowed(summary) {
		return denied(ReasonNoPermission)
	}
	return ModuleAccess{HasAccess: true}
}

func denied(reason string) ModuleAccess {
	return ModuleAccess{NoAccessReason: &reason}
}
