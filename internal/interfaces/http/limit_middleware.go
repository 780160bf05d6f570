package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/session"
)

// limitChecker lo implementa *usecase.LimitUseCase.
type limitChecker interface {
	Check(ctx context.Context, sess session.Session, action string) (*dto.LimitResponse, error)
}

// RequireLimit aplica el gate de límites del plan a un punto de creación.
// Denegado → 402 LIMIT_REACHED con el mensaje de la decisión.
func RequireLimit(action string, checker limitChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, err := checker.Check(c.Context(), GetSession(c), action)
		if err != nil {
			return writeError(c, err)
		}
		if !decision.CanPerform {
			code := "LIMIT_REACHED"
			if decision.IsExpired {
				code = "PLAN_EXPIRED"
			}
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{Code: code, Message: decision.Message})
		}
		if decision.IsExpired {
			c.Set("X-Plan-Grace", "true")
		}
		return c.Next()
	}
}
