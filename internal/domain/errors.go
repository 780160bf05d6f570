package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Las denegaciones de acceso esperadas (módulo no habilitado, límite alcanzado)
// NO son errores: se modelan como datos en access.ModuleAccess y access.LimitDecision.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrNoMembership = errors.New("sin membresía activa en la empresa")
)
