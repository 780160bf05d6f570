package repository

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// UsageRepository contadores de uso y plan vigente. Solo lectura para el Limit Gate.
type UsageRepository interface {
	// Usage devuelve el uso actual; si no hay contador se asume 0.
	Usage(ctx context.Context, companyID, action string) (*entity.UsageCounter, error)
	// Plan devuelve el plan de la empresa o nil si no tiene.
	Plan(ctx context.Context, companyID string) (*entity.CompanyPlan, error)
	// CreateDefaultPlan asigna el plan inicial a una empresa nueva.
	CreateDefaultPlan(ctx context.Context, companyID string) error
}
