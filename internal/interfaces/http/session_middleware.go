package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// SessionCheckTimeout tope de la validación de membresía por request.
const SessionCheckTimeout = 8 * time.Second

// membershipValidator lo implementa *usecase.RoleResolverUseCase.
type membershipValidator interface {
	ActiveMembership(ctx context.Context, principalID, companyID string) (*entity.Membership, error)
}

// SessionMiddleware confirma que la membresía del token sigue activa. Si la
// verificación no termina dentro de timeout la sesión se da por cerrada (401
// SESSION_TIMEOUT) en lugar de dejar el request colgado.
// El rol en locals se reemplaza por el vigente de la membresía.
func SessionMiddleware(v membershipValidator, timeout time.Duration, log *logger.Logger) fiber.Handler {
	if timeout <= 0 {
		timeout = SessionCheckTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("session")
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if err := sess.Validate(); err != nil {
			return writeError(c, err)
		}

		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()

		m, err := checkMembership(ctx, v, sess.PrincipalID, sess.CompanyID)
		switch {
		case err == nil:
		case errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil:
			log.Warn().Str("principal_id", sess.PrincipalID).Str("company_id", sess.CompanyID).
				Dur("timeout", timeout).Msg("verificación de sesión agotó el plazo; sesión cerrada")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "SESSION_TIMEOUT", Message: "no se pudo verificar la sesión; inicie sesión de nuevo",
			})
		case errors.Is(err, domain.ErrNoMembership), errors.Is(err, domain.ErrNotFound):
			return writeError(c, domain.ErrNoMembership)
		default:
			log.Error().Err(err).Str("principal_id", sess.PrincipalID).Msg("verificación de sesión fallida")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "SESSION_CHECK_FAILED", Message: "no se pudo verificar la sesión, intente más tarde",
			})
		}
		c.Locals(LocalRole, m.Role)
		return c.Next()
	}
}

type membershipResult struct {
	m   *entity.Membership
	err error
}

// checkMembership corta en ctx.Done() aunque el validador no respete el contexto.
func checkMembership(ctx context.Context, v membershipValidator, principalID, companyID string) (*entity.Membership, error) {
	done := make(chan membershipResult, 1)
	go func() {
		m, err := v.ActiveMembership(ctx, principalID, companyID)
		done <- membershipResult{m: m, err: err}
	}()
	select {
	case r := <-done:
		return r.m, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
