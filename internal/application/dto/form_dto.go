package dto

import "github.com/jhoicas/businessos-api/internal/domain/formlogic"

// FormResponsesRequest respuestas parciales del formulario (campo → valor).
type FormResponsesRequest struct {
	Responses map[string]any `json:"responses"`
}

// FormNextRequest respuestas y campo actual; current_field_id vacío pide el primero.
type FormNextRequest struct {
	Responses      map[string]any `json:"responses"`
	CurrentFieldID string         `json:"current_field_id"`
}

// LogicRuleRequest regla declarativa de un formulario.
type LogicRuleRequest struct {
	SourceFieldID string `json:"source_field_id" validate:"required"`
	Operator      string `json:"operator" validate:"required"`
	Value         any    `json:"value"`
	Action        string `json:"action" validate:"required"`
	TargetFieldID string `json:"target_field_id"`
	SortOrder     int    `json:"sort_order"`
}

// ReplaceRulesRequest conjunto completo de reglas del formulario.
type ReplaceRulesRequest struct {
	Rules []LogicRuleRequest `json:"rules"`
}

// FormEvaluationResponse recorrido completo con las respuestas actuales.
type FormEvaluationResponse struct {
	FormID string `json:"form_id"`
	formlogic.Result
}

// FormStepResponse siguiente campo o fin del formulario.
type FormStepResponse struct {
	FormID string `json:"form_id"`
	formlogic.Step
}
