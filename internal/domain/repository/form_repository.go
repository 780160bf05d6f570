package repository

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// FormRepository puerto de persistencia para formularios y sus logic rules.
type FormRepository interface {
	// GetForm devuelve el formulario con sus campos ordenados, acotado a la empresa.
	GetForm(ctx context.Context, companyID, formID string) (*entity.Form, error)
	// ListRules devuelve las reglas ordenadas por sort_order.
	ListRules(ctx context.Context, formID string) ([]entity.LogicRule, error)
	// ReplaceRules sustituye todas las reglas del formulario de forma atómica.
	ReplaceRules(ctx context.Context, formID string, rules []entity.LogicRule) error
}
