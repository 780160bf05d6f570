package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain/access"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService; el uso de interfaz evita el import circular.
type moduleChecker interface {
	Check(ctx context.Context, sess session.Session, moduleName string) (access.ModuleAccess, error)
}

// RequireModule devuelve un middleware Fiber que aplica el gate de módulos a la
// sesión. Debe usarse DESPUÉS de AuthMiddleware y SessionMiddleware.
//
// Comportamiento:
//   - 403 MODULE_DISABLED → módulo no contratado, vencido o desconocido.
//   - 403 MODULE_FORBIDDEN → habilitado pero el rol no tiene permiso.
//   - 503 MODULE_CHECK_FAILED → fallo de infraestructura al consultar.
func RequireModule(moduleName string, checker moduleChecker, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("module_guard")
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if err := sess.Validate(); err != nil {
			return writeError(c, err)
		}

		decision, err := checker.Check(c.Context(), sess, moduleName)
		if err != nil {
			log.Error().Err(err).Str("company_id", sess.CompanyID).Str("module", moduleName).Msg("verificación de módulo fallida")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}
		if decision.HasAccess {
			return c.Next()
		}
		if decision.Reason() == access.ReasonNoPermission {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_FORBIDDEN",
				Message: "su rol no tiene acceso al módulo '" + moduleName + "'",
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "MODULE_DISABLED",
			Message: "el módulo '" + moduleName + "' no está activo para esta empresa",
		})
	}
}
