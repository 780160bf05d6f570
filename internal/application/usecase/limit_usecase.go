package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/access"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// DefaultUsageTimeout plazo de la consulta de uso antes de tratarla como "cargando".
const DefaultUsageTimeout = 3 * time.Second

// LimitUseCase decide si la empresa activa puede crear un recurso acotado por plan.
type LimitUseCase struct {
	usage   repository.UsageRepository
	roles   *RoleResolverUseCase
	timeout time.Duration
	now     func() time.Time
	log     *logger.Logger
}

// NewLimitUseCase construye el caso de uso. timeout <= 0 usa DefaultUsageTimeout.
func NewLimitUseCase(usage repository.UsageRepository, roles *RoleResolverUseCase, timeout time.Duration, log *logger.Logger) *LimitUseCase {
	if timeout <= 0 {
		timeout = DefaultUsageTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LimitUseCase{usage: usage, roles: roles, timeout: timeout, now: time.Now, log: log.Component("limits")}
}

// WithClock reemplaza el reloj (tests).
func (uc *LimitUseCase) WithClock(now func() time.Time) *LimitUseCase {
	uc.now = now
	return uc
}

// Check evalúa la acción. Si la consulta de uso agota su plazo se permite de forma
// optimista (el uso se considera "cargando") y se registra; no hay reconciliación posterior.
func (uc *LimitUseCase) Check(ctx context.Context, sess session.Session, action string) (*dto.LimitResponse, error) {
	if !entity.ValidLimitAction(action) {
		return nil, fmt.Errorf("%w: acción %q", domain.ErrInvalidInput, action)
	}
	summary, err := uc.roles.Resolve(ctx, sess)
	if err != nil {
		return nil, err
	}

	in := access.LimitInput{Action: action, IsAdmin: summary.IsAdmin(), Now: uc.now()}
	out := &dto.LimitResponse{Action: action}

	if !in.IsAdmin {
		usage, plan, err := uc.lookup(ctx, sess.CompanyID, action)
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			uc.log.Warn().Str("company_id", sess.CompanyID).Str("action", action).
				Dur("timeout", uc.timeout).Msg("uso no disponible a tiempo; se permite de forma optimista")
			in.Loading = true
		case err != nil:
			return nil, err
		default:
			in.Usage = usage
			if n, ok := plan.Limit(action); ok {
				in.Limit = &n
			}
			if plan != nil {
				in.PlanExpired = plan.ExpiresAt != nil && !in.Now.Before(*plan.ExpiresAt)
				in.GraceUntil = plan.GraceUntil
			}
		}
	}

	out.Usage, out.Limit, out.Loading = in.Usage, in.Limit, in.Loading
	out.LimitDecision = access.EvaluateLimit(in)
	return out, nil
}

func (uc *LimitUseCase) lookup(ctx context.Context, companyID, action string) (int, *entity.CompanyPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	counter, err := uc.usage.Usage(ctx, companyID, action)
	if err != nil {
		return 0, nil, fmt.Errorf("uso de %s: %w", action, errors.Join(err, ctx.Err()))
	}
	plan, err := uc.usage.Plan(ctx, companyID)
	if err != nil {
		return 0, nil, fmt.Errorf("plan de la empresa: %w", errors.Join(err, ctx.Err()))
	}
	current := 0
	if counter != nil {
		current = counter.Current
	}
	return current, plan, nil
}
