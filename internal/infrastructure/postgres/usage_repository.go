package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

var _ repository.UsageRepository = (*UsageRepo)(nil)

// DefaultPlanCode plan asignado a las empresas nuevas.
const DefaultPlanCode = "starter"

// UsageRepo contadores de uso (mantenidos por la base) y planes.
type UsageRepo struct {
	q Querier
}

// NewUsageRepository construye el adaptador. Acepta pool o tx (Querier).
func NewUsageRepository(q Querier) *UsageRepo {
	return &UsageRepo{q: q}
}

// Usage devuelve el contador; sin fila el uso es 0.
func (r *UsageRepo) Usage(ctx context.Context, companyID, action string) (*entity.UsageCounter, error) {
	const query = `
		SELECT current_count FROM usage_counters
		 WHERE company_id = $1 AND action = $2`
	c := entity.UsageCounter{CompanyID: companyID, Action: action}
	if err := r.q.QueryRow(ctx, query, companyID, action).Scan(&c.Current); err != nil {
		if isNoRows(err) {
			return &c, nil
		}
		return nil, fmt.Errorf("get usage %s: %w", action, err)
	}
	return &c, nil
}

// Plan devuelve el plan de la empresa con sus límites, o nil.
func (r *UsageRepo) Plan(ctx context.Context, companyID string) (*entity.CompanyPlan, error) {
	const query = `
		SELECT company_id, plan_code, expires_at, grace_until
		  FROM company_plans WHERE company_id = $1`
	var p entity.CompanyPlan
	err := r.q.QueryRow(ctx, query, companyID).Scan(&p.CompanyID, &p.PlanCode, &p.ExpiresAt, &p.GraceUntil)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}

	rows, err := r.q.Query(ctx, `SELECT action, max_count FROM plan_limits WHERE plan_code = $1`, p.PlanCode)
	if err != nil {
		return nil, fmt.Errorf("list plan limits: %w", err)
	}
	defer rows.Close()
	p.Limits = make(map[string]int)
	for rows.Next() {
		var (
			action string
			limit  int
		)
		if err := rows.Scan(&action, &limit); err != nil {
			return nil, fmt.Errorf("scan plan limit: %w", err)
		}
		p.Limits[action] = limit
	}
	return &p, rows.Err()
}

// CreateDefaultPlan asigna el plan inicial (sin vencimiento).
func (r *UsageRepo) CreateDefaultPlan(ctx context.Context, companyID string) error {
	const query = `
		INSERT INTO company_plans (company_id, plan_code) VALUES ($1, $2)
		ON CONFLICT (company_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, companyID, DefaultPlanCode); err != nil {
		return fmt.Errorf("create default plan: %w", err)
	}
	return nil
}
