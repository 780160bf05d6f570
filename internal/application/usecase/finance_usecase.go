package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/access"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/finance"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

const periodLayout = "2006-01"

// MaxTrendPeriods tope de períodos consultados en paralelo para la tendencia.
const MaxTrendPeriods = 24

// FinanceUseCase playbook financiero: métricas externas contra objetivos de la empresa.
type FinanceUseCase struct {
	companies repository.CompanyRepository
	repo      repository.FinanceRepository
	metrics   ports.FinanceMetricsProvider
	pdf       ports.PlaybookPDFGenerator
	roles     *RoleResolverUseCase
	cache     ports.QueryCache
	now       func() time.Time
	log       *logger.Logger
}

// NewFinanceUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewFinanceUseCase(
	companies repository.CompanyRepository,
	repo repository.FinanceRepository,
	metrics ports.FinanceMetricsProvider,
	pdf ports.PlaybookPDFGenerator,
	roles *RoleResolverUseCase,
	cache ports.QueryCache,
	log *logger.Logger,
) *FinanceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &FinanceUseCase{
		companies: companies, repo: repo, metrics: metrics, pdf: pdf,
		roles: roles, cache: cache, now: time.Now, log: log.Component("finance"),
	}
}

// Playbook evalúa las condiciones del período contra los objetivos del framework.
// period vacío usa el mes en curso.
func (uc *FinanceUseCase) Playbook(ctx context.Context, sess session.Session, frameworkID, period string) (*dto.PlaybookResponse, error) {
	if err := uc.authorize(ctx, sess); err != nil {
		return nil, err
	}
	cur, err := uc.parsePeriod(period)
	if err != nil {
		return nil, err
	}
	company, err := uc.company(ctx, sess)
	if err != nil {
		return nil, err
	}

	var (
		current, previous *entity.FinanceMetrics
		targets           *entity.FinanceTarget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := uc.metrics.Metrics(gctx, sess.CompanyID, company.FinanceMode, cur.Format(periodLayout))
		if err != nil {
			return fmt.Errorf("métricas %s: %w", cur.Format(periodLayout), err)
		}
		current = m
		return nil
	})
	g.Go(func() error {
		prev := cur.AddDate(0, -1, 0).Format(periodLayout)
		m, err := uc.metrics.Metrics(gctx, sess.CompanyID, company.FinanceMode, prev)
		if err != nil {
			// Sin período anterior solo se suprime revenue_down.
			uc.log.Warn().Err(err).Str("company_id", sess.CompanyID).Str("period", prev).Msg("métricas del período anterior no disponibles")
			return nil
		}
		previous = m
		return nil
	})
	g.Go(func() error {
		t, err := uc.repo.GetTargets(gctx, sess.CompanyID, frameworkID)
		if err != nil {
			return fmt.Errorf("objetivos: %w", err)
		}
		targets = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if current == nil {
		current = &entity.FinanceMetrics{Period: cur.Format(periodLayout)}
	}

	conds := finance.EvaluateConditions(current, previous, targets)
	resp := &dto.PlaybookResponse{
		CompanyID:   sess.CompanyID,
		FrameworkID: frameworkID,
		Period:      cur.Format(periodLayout),
		Current:     toMetricsDTO(current),
		Targets:     toTargetsDTO(targets),
		Conditions:  finance.Keys(conds),
		Items:       make([]dto.PlaybookItem, 0, len(conds)),
	}
	if previous != nil {
		p := toMetricsDTO(previous)
		resp.Previous = &p
	}
	for _, c := range conds {
		prompt, _ := finance.PromptFor(c.Key)
		resp.Items = append(resp.Items, dto.PlaybookItem{
			Key: c.Key, Title: prompt.Title, Action: prompt.Action,
			Actual: c.Actual, Threshold: c.Threshold,
		})
	}
	return resp, nil
}

// Trend consulta n períodos hasta until (inclusive) en paralelo. El resultado se
// ordena por período, no por orden de llegada.
func (uc *FinanceUseCase) Trend(ctx context.Context, sess session.Session, n int, until string) (*dto.TrendResponse, error) {
	if err := uc.authorize(ctx, sess); err != nil {
		return nil, err
	}
	if n <= 0 || n > MaxTrendPeriods {
		return nil, fmt.Errorf("%w: periods debe estar entre 1 y %d", domain.ErrInvalidInput, MaxTrendPeriods)
	}
	last, err := uc.parsePeriod(until)
	if err != nil {
		return nil, err
	}
	company, err := uc.company(ctx, sess)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MetricsDTO, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		period := last.AddDate(0, i-n+1, 0).Format(periodLayout)
		g.Go(func() error {
			m, err := uc.metrics.Metrics(gctx, sess.CompanyID, company.FinanceMode, period)
			if err != nil {
				return fmt.Errorf("métricas %s: %w", period, err)
			}
			if m == nil {
				m = &entity.FinanceMetrics{}
			}
			m.Period = period
			out[i] = toMetricsDTO(m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.TrendResponse{Periods: out}, nil
}

// PlaybookPDF genera el reporte PDF del playbook.
func (uc *FinanceUseCase) PlaybookPDF(ctx context.Context, sess session.Session, frameworkID, period string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador PDF no configurado")
	}
	report, err := uc.Playbook(ctx, sess, frameworkID, period)
	if err != nil {
		return nil, err
	}
	company, err := uc.company(ctx, sess)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GeneratePlaybookPDF(ctx, company.Name, report)
}

// PutTargets guarda los umbrales del framework. Solo administradores.
func (uc *FinanceUseCase) PutTargets(ctx context.Context, sess session.Session, frameworkID string, in dto.TargetsDTO) (*dto.TargetsDTO, error) {
	summary, err := uc.roles.Resolve(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !summary.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	fw, err := uc.repo.GetFramework(ctx, sess.CompanyID, frameworkID)
	if err != nil {
		return nil, err
	}
	if fw == nil {
		return nil, domain.ErrNotFound
	}
	t := &entity.FinanceTarget{
		CompanyID:      sess.CompanyID,
		FrameworkID:    frameworkID,
		Revenue:        in.Revenue,
		NetIncome:      in.NetIncome,
		CashMinimum:    in.CashMinimum,
		ARMax:          in.ARMax,
		APMax:          in.APMax,
		GrossMarginMin: in.GrossMarginMin,
		UpdatedAt:      uc.now(),
	}
	if err := uc.repo.UpsertTargets(ctx, t); err != nil {
		return nil, fmt.Errorf("guardar objetivos: %w", err)
	}
	if uc.cache != nil {
		uc.cache.PurgeCompany(sess.CompanyID)
	}
	return toTargetsDTO(t), nil
}

// authorize exige el flag de finanzas (o rol admin).
func (uc *FinanceUseCase) authorize(ctx context.Context, sess session.Session) error {
	summary, err := uc.roles.Resolve(ctx, sess)
	if err != nil {
		return err
	}
	if !summary.HasFinanceAccess {
		return fmt.Errorf("%w: %s", domain.ErrForbidden, access.ReasonNoPermission)
	}
	return nil
}

func (uc *FinanceUseCase) company(ctx context.Context, sess session.Session) (*entity.Company, error) {
	return cached(ctx, uc.cache, sess, queryCompany, func(ctx context.Context) (*entity.Company, error) {
		c, err := uc.companies.GetByID(ctx, sess.CompanyID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		return c, nil
	})
}

func (uc *FinanceUseCase) parsePeriod(period string) (time.Time, error) {
	if period == "" {
		now := uc.now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(periodLayout, period)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: period debe tener formato YYYY-MM", domain.ErrInvalidInput)
	}
	return t, nil
}

func toMetricsDTO(m *entity.FinanceMetrics) dto.MetricsDTO {
	conv := func(v *entity.FinanceMetric) *dto.MetricDTO {
		if v == nil {
			return nil
		}
		return &dto.MetricDTO{Value: v.Value, Confidence: v.Confidence, Source: v.Source}
	}
	return dto.MetricsDTO{
		Period:             m.Period,
		Revenue:            conv(m.Revenue),
		NetIncome:          conv(m.NetIncome),
		CashOnHand:         conv(m.CashOnHand),
		AccountsReceivable: conv(m.AccountsReceivable),
		AccountsPayable:    conv(m.AccountsPayable),
		GrossMargin:        conv(m.GrossMargin),
	}
}

func toTargetsDTO(t *entity.FinanceTarget) *dto.TargetsDTO {
	if t == nil {
		return nil
	}
	return &dto.TargetsDTO{
		Revenue:        t.Revenue,
		NetIncome:      t.NetIncome,
		CashMinimum:    t.CashMinimum,
		ARMax:          t.ARMax,
		APMax:          t.APMax,
		GrossMarginMin: t.GrossMarginMin,
	}
}
