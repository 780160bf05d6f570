package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/businessos-api/internal/application/auth"
	"github.com/jhoicas/businessos-api/internal/application/usecase"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	RoleUC        *usecase.RoleResolverUseCase
	ModuleService *usecase.ModuleService
	LimitUC       *usecase.LimitUseCase
	CompanyUC     *usecase.CompanyUseCase
	MemberUC      *usecase.MemberUseCase
	FormUC        *usecase.FormUseCase
	FinanceUC     *usecase.FinanceUseCase
	FrameworkUC   *usecase.FrameworkUseCase
	CoachingUC    *usecase.CoachingUseCase
	PreferencesUC *usecase.PreferencesUseCase
	AIUC          *usecase.AIUseCase
	JWTSecret     string
	// SessionTimeout tope de la verificación de membresía; 0 = SessionCheckTimeout.
	SessionTimeout time.Duration
	Logger         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.MemberUC, deps.ModuleService)
	accessHandler := NewAccessHandler(deps.RoleUC, deps.ModuleService, deps.LimitUC)
	formHandler := NewFormHandler(deps.FormUC)
	financeHandler := NewFinanceHandler(deps.FinanceUC, deps.FrameworkUC)
	misc := NewMiscHandler(deps.CoachingUC, deps.PreferencesUC, deps.AIUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Solo principal autenticado: no exige empresa activa.
	authed := api.Group("", AuthMiddleware(deps.JWTSecret))
	authed.Post("/companies", companyHandler.Create)
	authed.Get("/companies/mine", companyHandler.Mine)
	authed.Get("/preferences/nav", misc.GetNav)
	authed.Put("/preferences/nav", misc.PutNav)
	authed.Post("/session/logout", authHandler.Logout)
	authed.Post("/session/switch", authHandler.Switch)

	// Sesión de tenant: además del token exige membresía activa verificada.
	// Se registra después de las rutas de authed para no aplicarles el chequeo.
	tenant := authed.Group("", SessionMiddleware(deps.RoleUC, deps.SessionTimeout, deps.Logger))

	tenant.Get("/companies/:id", companyHandler.GetByID)
	tenant.Put("/companies/:id/modules/:key", companyHandler.SetModule)

	tenant.Post("/members", RequireLimit(entity.ActionAddUser, deps.LimitUC), companyHandler.InviteMember)
	tenant.Patch("/members/:userID", companyHandler.UpdateMember)

	accessGroup := tenant.Group("/access")
	accessGroup.Get("/roles", accessHandler.Roles)
	accessGroup.Get("/modules/:key", accessHandler.Module)
	accessGroup.Get("/limits/:action", accessHandler.Limit)

	forms := tenant.Group("/forms", RequireModule(entity.ModuleForms, deps.ModuleService, deps.Logger))
	forms.Post("/:id/evaluate", formHandler.Evaluate)
	forms.Post("/:id/next", formHandler.Next)
	forms.Put("/:id/rules", formHandler.ReplaceRules)

	finance := tenant.Group("/finance", RequireModule(entity.ModuleFinance, deps.ModuleService, deps.Logger))
	finance.Get("/playbook", financeHandler.Playbook)
	finance.Get("/playbook.pdf", financeHandler.PlaybookPDF)
	finance.Get("/trend", financeHandler.Trend)

	frameworks := tenant.Group("/frameworks", RequireModule(entity.ModuleFinance, deps.ModuleService, deps.Logger))
	frameworks.Post("/", RequireLimit(entity.ActionAddFramework, deps.LimitUC), financeHandler.CreateFramework)
	frameworks.Post("/:id/publish", RequireLimit(entity.ActionPublishFramework, deps.LimitUC), financeHandler.PublishFramework)
	frameworks.Put("/:id/targets", financeHandler.PutTargets)

	coaching := tenant.Group("/coaching", RequireModule(entity.ModuleCoaching, deps.ModuleService, deps.Logger))
	coaching.Post("/clients", RequireLimit(entity.ActionAddClient, deps.LimitUC), misc.AddClient)

	tenant.Get("/ai/status", misc.AIStatus)
}
