package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

var _ repository.FormRepository = (*FormRepo)(nil)

// FormRepo formularios y logic rules. ReplaceRules abre su propia transacción.
type FormRepo struct {
	pool *pgxpool.Pool
}

// NewFormRepository construye el adaptador.
func NewFormRepository(pool *pgxpool.Pool) *FormRepo {
	return &FormRepo{pool: pool}
}

// GetForm devuelve el formulario con sus campos en orden de posición.
func (r *FormRepo) GetForm(ctx context.Context, companyID, formID string) (*entity.Form, error) {
	var f entity.Form
	err := r.pool.QueryRow(ctx,
		`SELECT id, company_id, title FROM forms WHERE id = $1 AND company_id = $2`,
		formID, companyID,
	).Scan(&f.ID, &f.CompanyID, &f.Title)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get form: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, form_id, COALESCE(block_id, ''), label, position
		  FROM form_fields
		 WHERE form_id = $1
		 ORDER BY position, id`, formID)
	if err != nil {
		return nil, fmt.Errorf("list form fields: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var fld entity.FormField
		if err := rows.Scan(&fld.ID, &fld.FormID, &fld.BlockID, &fld.Label, &fld.Position); err != nil {
			return nil, fmt.Errorf("scan form field: %w", err)
		}
		f.Fields = append(f.Fields, fld)
	}
	return &f, rows.Err()
}

// ListRules devuelve las reglas por sort_order. value se guarda como JSONB.
func (r *FormRepo) ListRules(ctx context.Context, formID string) ([]entity.LogicRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, form_id, source_field_id, operator, value, action,
		       COALESCE(target_field_id, ''), sort_order
		  FROM form_logic_rules
		 WHERE form_id = $1
		 ORDER BY sort_order, id`, formID)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	var out []entity.LogicRule
	for rows.Next() {
		var (
			rule entity.LogicRule
			raw  []byte
		)
		if err := rows.Scan(&rule.ID, &rule.FormID, &rule.SourceFieldID, &rule.Operator, &raw,
			&rule.Action, &rule.TargetFieldID, &rule.SortOrder); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &rule.Value); err != nil {
				return nil, fmt.Errorf("rule %s: value inválido: %w", rule.ID, err)
			}
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

// ReplaceRules borra y reinserta todas las reglas del formulario en una transacción.
func (r *FormRepo) ReplaceRules(ctx context.Context, formID string, rules []entity.LogicRule) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM form_logic_rules WHERE form_id = $1`, formID); err != nil {
		return fmt.Errorf("delete rules: %w", err)
	}
	for _, rule := range rules {
		raw, err := json.Marshal(rule.Value)
		if err != nil {
			return fmt.Errorf("rule value: %w", err)
		}
		var target *string
		if rule.TargetFieldID != "" {
			target = &rule.TargetFieldID
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO form_logic_rules (id, form_id, source_field_id, operator, value, action, target_field_id, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rule.ID, formID, rule.SourceFieldID, string(rule.Operator), raw, string(rule.Action), target, rule.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("insert rule: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
