package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/formlogic"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

// formDefinition formulario y reglas cargados juntos para evaluar.
type formDefinition struct {
	form  *entity.Form
	rules []entity.LogicRule
}

// FormUseCase evalúa las logic rules de los formularios de la empresa activa.
type FormUseCase struct {
	repo  repository.FormRepository
	roles *RoleResolverUseCase
	cache ports.QueryCache
}

// NewFormUseCase construye el caso de uso.
func NewFormUseCase(repo repository.FormRepository, roles *RoleResolverUseCase, cache ports.QueryCache) *FormUseCase {
	return &FormUseCase{repo: repo, roles: roles, cache: cache}
}

// Evaluate devuelve el recorrido completo con las respuestas dadas.
func (uc *FormUseCase) Evaluate(ctx context.Context, sess session.Session, formID string, in dto.FormResponsesRequest) (*dto.FormEvaluationResponse, error) {
	def, err := uc.load(ctx, sess, formID)
	if err != nil {
		return nil, err
	}
	res := formlogic.Evaluate(def.form, def.rules, in.Responses)
	return &dto.FormEvaluationResponse{FormID: formID, Result: res}, nil
}

// Next decide el siguiente campo a mostrar desde current_field_id.
func (uc *FormUseCase) Next(ctx context.Context, sess session.Session, formID string, in dto.FormNextRequest) (*dto.FormStepResponse, error) {
	def, err := uc.load(ctx, sess, formID)
	if err != nil {
		return nil, err
	}
	step, err := formlogic.Next(def.form, def.rules, in.Responses, in.CurrentFieldID)
	if err != nil {
		return nil, err
	}
	return &dto.FormStepResponse{FormID: formID, Step: step}, nil
}

// ReplaceRules valida y sustituye todas las reglas del formulario. Solo administradores.
func (uc *FormUseCase) ReplaceRules(ctx context.Context, sess session.Session, formID string, in dto.ReplaceRulesRequest) error {
	summary, err := uc.roles.Resolve(ctx, sess)
	if err != nil {
		return err
	}
	if !summary.IsAdmin() {
		return domain.ErrForbidden
	}
	form, err := uc.repo.GetForm(ctx, sess.CompanyID, formID)
	if err != nil {
		return err
	}
	if form == nil {
		return domain.ErrNotFound
	}

	fields := make(map[string]bool, len(form.Fields))
	blocks := make(map[string]bool)
	for _, f := range form.Fields {
		fields[f.ID] = true
		if f.BlockID != "" {
			blocks[f.BlockID] = true
		}
	}

	rules := make([]entity.LogicRule, 0, len(in.Rules))
	for i, r := range in.Rules {
		op, action := entity.RuleOperator(r.Operator), entity.RuleAction(r.Action)
		if !entity.ValidOperator(op) {
			return fmt.Errorf("%w: regla %d: operador %q", domain.ErrInvalidInput, i, r.Operator)
		}
		if !entity.ValidAction(action) {
			return fmt.Errorf("%w: regla %d: acción %q", domain.ErrInvalidInput, i, r.Action)
		}
		if !fields[r.SourceFieldID] {
			return fmt.Errorf("%w: regla %d: campo origen %q no existe", domain.ErrInvalidInput, i, r.SourceFieldID)
		}
		switch action {
		case entity.ActionSkipTo:
			if !fields[r.TargetFieldID] {
				return fmt.Errorf("%w: regla %d: campo destino %q no existe", domain.ErrInvalidInput, i, r.TargetFieldID)
			}
		case entity.ActionHideBlock:
			if !fields[r.TargetFieldID] && !blocks[r.TargetFieldID] {
				return fmt.Errorf("%w: regla %d: bloque %q no existe", domain.ErrInvalidInput, i, r.TargetFieldID)
			}
		}
		rules = append(rules, entity.LogicRule{
			ID:            uuid.New().String(),
			FormID:        formID,
			SourceFieldID: r.SourceFieldID,
			Operator:      op,
			Value:         r.Value,
			Action:        action,
			TargetFieldID: r.TargetFieldID,
			SortOrder:     r.SortOrder,
		})
	}

	if err := uc.repo.ReplaceRules(ctx, formID, formlogic.SortRules(rules)); err != nil {
		return fmt.Errorf("guardar reglas: %w", err)
	}
	if uc.cache != nil {
		uc.cache.PurgeCompany(sess.CompanyID)
	}
	return nil
}

func (uc *FormUseCase) load(ctx context.Context, sess session.Session, formID string) (formDefinition, error) {
	if _, err := uc.roles.Resolve(ctx, sess); err != nil {
		return formDefinition{}, err
	}
	return cached(ctx, uc.cache, sess, "form:"+formID, func(ctx context.Context) (formDefinition, error) {
		form, err := uc.repo.GetForm(ctx, sess.CompanyID, formID)
		if err != nil {
			return formDefinition{}, err
		}
		if form == nil {
			return formDefinition{}, domain.ErrNotFound
		}
		rules, err := uc.repo.ListRules(ctx, formID)
		if err != nil {
			return formDefinition{}, err
		}
		return formDefinition{form: form, rules: rules}, nil
	})
}
