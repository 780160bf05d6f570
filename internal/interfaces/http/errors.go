package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/infrastructure/functions"
)

// writeError traduce errores de dominio a respuestas HTTP. Lo que no es un
// sentinel conocido se responde como 500 sin filtrar el detalle interno.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno"
	var fnErr *functions.Error
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales o sesión inválidas"
	case errors.Is(err, domain.ErrNoMembership):
		status, code, msg = fiber.StatusForbidden, "NO_MEMBERSHIP", "sin membresía activa en la empresa"
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", "no tiene permisos para esta operación"
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		status, code, msg = fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"
	case errors.Is(err, domain.ErrConflict):
		status, code, msg = fiber.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		status, code, msg = fiber.StatusGatewayTimeout, "TIMEOUT", "la operación tardó demasiado; intente de nuevo"
	case errors.As(err, &fnErr):
		status, code, msg = fiber.StatusBadGateway, "UPSTREAM_FAILED", fnErr.Message
	}
	if status == fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Str("request_id", localString(c, localRequestID)).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
