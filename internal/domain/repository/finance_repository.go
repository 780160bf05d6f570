package repository

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// FinanceRepository objetivos financieros y frameworks por empresa.
type FinanceRepository interface {
	GetTargets(ctx context.Context, companyID, frameworkID string) (*entity.FinanceTarget, error)
	UpsertTargets(ctx context.Context, t *entity.FinanceTarget) error

	CreateFramework(ctx context.Context, f *entity.Framework) error
	GetFramework(ctx context.Context, companyID, frameworkID string) (*entity.Framework, error)
	UpdateFramework(ctx context.Context, f *entity.Framework) error
}
