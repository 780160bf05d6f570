package entity

import "time"

// Modos de finanzas de una empresa.
const (
	FinanceModeBuiltinBooks      = "builtin_books"
	FinanceModeExternalReporting = "external_reporting"
)

// Company representa una organización/tenant: frontera de aislamiento de todos los datos de negocio.
type Company struct {
	ID          string
	Name        string
	FinanceMode string // builtin_books | external_reporting
	Status      string // active, suspended, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Claves de módulo. Las "core" se conceden solo con membresía válida;
// las "premium" requieren una fila explícita en company_modules.
const (
	ModuleTasks     = "tasks"
	ModuleProjects  = "projects"
	ModuleCalendar  = "calendar"
	ModuleNotes     = "notes"
	ModuleDocuments = "documents"
	ModuleDashboard = "dashboard"
	ModuleSettings  = "settings"

	ModuleCRM       = "crm"
	ModuleSales     = "sales"
	ModuleCoaching  = "coaching"
	ModuleFinance   = "finance"
	ModuleForms     = "forms"
	ModuleWorkflows = "workflows"
	ModuleLMS       = "lms"
)

// CompanyModule representa la activación de un módulo premium en una empresa.
type CompanyModule struct {
	ID          string
	CompanyID   string
	ModuleName  string
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	UpdatedAt   time.Time
}
