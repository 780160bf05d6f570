package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/usecase"
)

// AccessHandler expone las decisiones de acceso que consumen los guards del cliente.
type AccessHandler struct {
	roles   *usecase.RoleResolverUseCase
	modules *usecase.ModuleService
	limits  *usecase.LimitUseCase
}

// NewAccessHandler construye el handler.
func NewAccessHandler(roles *usecase.RoleResolverUseCase, modules *usecase.ModuleService, limits *usecase.LimitUseCase) *AccessHandler {
	return &AccessHandler{roles: roles, modules: modules, limits: limits}
}

// Roles godoc
// @Summary      Resumen de roles de la sesión
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RolesResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/access/roles [get]
func (h *AccessHandler) Roles(c *fiber.Ctx) error {
	sess := GetSession(c)
	summary, err := h.roles.Resolve(c.Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RolesResponse{CompanyID: sess.CompanyID, Roles: summary})
}

// Module godoc
// @Summary      Acceso a un módulo
// @Description  Decisión tri-estado: has_access, loading y no_access_reason (not_enabled | no_permission).
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Clave del módulo"
// @Success      200  {object}  dto.ModuleAccessResponse
// @Router       /api/access/modules/{key} [get]
func (h *AccessHandler) Module(c *fiber.Ctx) error {
	key := c.Params("key")
	decision, err := h.modules.Check(c.Context(), GetSession(c), key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ModuleAccessResponse{Module: key, ModuleAccess: decision})
}

// Limit godoc
// @Summary      Límite del plan para una acción
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Param        action  path  string  true  "add_user | add_framework | publish_framework | add_client"
// @Success      200     {object}  dto.LimitResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/access/limits/{action} [get]
func (h *AccessHandler) Limit(c *fiber.Ctx) error {
	out, err := h.limits.Check(c.Context(), GetSession(c), c.Params("action"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
