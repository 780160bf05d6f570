package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

var _ repository.FinanceRepository = (*FinanceRepo)(nil)

// FinanceRepo objetivos y frameworks. Los NUMERIC se leen como decimal.Decimal
// gracias al codec registrado en NewPool.
type FinanceRepo struct {
	q Querier
}

// NewFinanceRepository construye el adaptador.
func NewFinanceRepository(q Querier) *FinanceRepo {
	return &FinanceRepo{q: q}
}

// GetTargets devuelve los umbrales o nil si la empresa no los configuró.
func (r *FinanceRepo) GetTargets(ctx context.Context, companyID, frameworkID string) (*entity.FinanceTarget, error) {
	const query = `
		SELECT company_id, framework_id, revenue, net_income, cash_minimum,
		       ar_max, ap_max, gross_margin_min, updated_at
		  FROM finance_targets
		 WHERE company_id = $1 AND framework_id = $2`
	var t entity.FinanceTarget
	err := r.q.QueryRow(ctx, query, companyID, frameworkID).Scan(
		&t.CompanyID, &t.FrameworkID, &t.Revenue, &t.NetIncome, &t.CashMinimum,
		&t.ARMax, &t.APMax, &t.GrossMarginMin, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get finance targets: %w", err)
	}
	return &t, nil
}

// UpsertTargets guarda los umbrales; un campo nil queda como NULL (sin objetivo).
func (r *FinanceRepo) UpsertTargets(ctx context.Context, t *entity.FinanceTarget) error {
	const query = `
		INSERT INTO finance_targets (company_id, framework_id, revenue, net_income, cash_minimum,
		                             ar_max, ap_max, gross_margin_min, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id, framework_id) DO UPDATE
		   SET revenue = EXCLUDED.revenue,
		       net_income = EXCLUDED.net_income,
		       cash_minimum = EXCLUDED.cash_minimum,
		       ar_max = EXCLUDED.ar_max,
		       ap_max = EXCLUDED.ap_max,
		       gross_margin_min = EXCLUDED.gross_margin_min,
		       updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		t.CompanyID, t.FrameworkID, t.Revenue, t.NetIncome, t.CashMinimum,
		t.ARMax, t.APMax, t.GrossMarginMin, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert finance targets: %w", err)
	}
	return nil
}

// CreateFramework persiste un framework.
func (r *FinanceRepo) CreateFramework(ctx context.Context, f *entity.Framework) error {
	const query = `
		INSERT INTO frameworks (id, company_id, name, status, published_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, f.ID, f.CompanyID, f.Name, f.Status, f.PublishedAt, f.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert framework: %w", err)
	}
	return nil
}

// GetFramework obtiene un framework de la empresa.
func (r *FinanceRepo) GetFramework(ctx context.Context, companyID, frameworkID string) (*entity.Framework, error) {
	const query = `
		SELECT id, company_id, name, status, published_at, created_at
		  FROM frameworks WHERE id = $1 AND company_id = $2`
	var f entity.Framework
	err := r.q.QueryRow(ctx, query, frameworkID, companyID).Scan(
		&f.ID, &f.CompanyID, &f.Name, &f.Status, &f.PublishedAt, &f.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get framework: %w", err)
	}
	return &f, nil
}

// UpdateFramework actualiza nombre y estado de publicación.
func (r *FinanceRepo) UpdateFramework(ctx context.Context, f *entity.Framework) error {
	const query = `
		UPDATE frameworks SET name = $3, status = $4, published_at = $5
		 WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query, f.ID, f.CompanyID, f.Name, f.Status, f.PublishedAt)
	if err != nil {
		return fmt.Errorf("update framework: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
