package formlogic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/formlogic"
)

// buildForm q1..q5; q3 y q4 forman el bloque "b2".
func buildForm() *entity.Form {
	return &entity.Form{
		ID: "f1",
		Fields: []entity.FormField{
			{ID: "q1", Position: 1},
			{ID: "q2", Position: 2},
			{ID: "q3", BlockID: "b2", Position: 3},
			{ID: "q4", BlockID: "b2", Position: 4},
			{ID: "q5", Position: 5},
		},
	}
}

func TestEvaluate_SinReglas_SecuenciaNatural(t *testing.T) {
	res := formlogic.Evaluate(buildForm(), nil, map[string]any{})
	assert.Equal(t, []string{"q1", "q2", "q3", "q4", "q5"}, res.Path)
	assert.False(t, res.Ended)
}

func TestEvaluate_EndFormTerminaTrasQ1(t *testing.T) {
	rules := []entity.LogicRule{
		{SourceFieldID: "q1", Operator: entity.OpEquals, Value: "no", Action: entity.ActionEndForm, SortOrder: 1},
	}
	res := formlogic.Evaluate(buildForm(), rules, map[string]any{"q1": "no"})

	assert.True(t, res.Ended)
	assert.Equal(t, "q1", res.EndedAt)
	assert.Equal(t, []string{"q1"}, res.Path)
	assert.Equal(t, []string{"q2", "q3", "q4", "q5"}, res.Unanswered)

	step, err := formlogic.Next(buildForm(), rules, map[string]any{"q1": "no"}, "q1")
	require.NoError(t, err)
	assert.True(t, step.Complete)
	assert.True(t, step.Ended)
	assert.Empty(t, step.NextFieldID)
}

func TestEvaluate_EndFormNoDisparaConOtraRespuesta(t *testing.T) {
	rules := []entity.LogicRule{
		{SourceFieldID: "q1", Operator: entity.OpEquals, Value: "no", Action: entity.ActionEndForm, SortOrder: 1},
	}
	step, err := formlogic.Next(buildForm(), rules, map[string]any{"q1": "yes"}, "q1")
	require.NoError(t, err)
	assert.Equal(t, "q2", step.NextFieldID)
	assert.False(t, step.Complete)
}

func TestEvaluate_SkipToSaltaHaciaAdelante(t *testing.T) {
	rules := []entity.LogicRule{
		{SourceFieldID: "q1", Operator: entity.OpEquals, Value: "skip", Action: entity.ActionSkipTo, TargetFieldID: "q4", SortOrder: 1},
	}
	res := formlogic.Evaluate(buildForm(), rules, map[string]any{"q1": "skip"})
	assert.Equal(t, []string{"q1", "q4", "q5"}, res.Path)
	assert.Equal(t, []string{"q2", "q3"}, res.Skipped)
}

func TestEvaluate_SkipToHaciaAtrasSeIgnora(t *testing.T) {
	rules := []entity.LogicRule{
		{SourceFieldID: "q3", Operator: entity.OpIsNotEmpty, Action: entity.ActionSkipTo, TargetFieldID: "q1", SortOrder: 1},
	}
	res := formlogic.Evaluate(buildForm(), rules, map[string]any{"q3": "x"})
	assert.Equal(t, []string{"q1", "q2", "q3", "q4", "q5"}, res.Path, "sin backtracking ni bucles")
}

func TestEvaluate_HideBlockOcultaTodoElBloque(t *testing.T) {
	rules := []entity.LogicRule{
		{SourceFieldID: "q2", Operator: entity.OpLessThan, Value: 18, Action: entity.ActionHideBlock, TargetFieldID: "b2", SortOrder: 1},
	}
	res := formlogic.Evaluate(buildForm(), rules, map[string]any{"q2": "16"})
	assert.Equal(t, []string{"q1", "q2", "q5"}, res.Path)
	assert.Equal(t, []string{"q3", "q4"}, res.Hidden)
}

func TestEvaluate_PrimeraReglaGanaPorObjetivo(t *testing.T) {
	rules := []entity.LogicRule{
		// Orden de entrada invertido a propósito: manda SortOrder.
		{ID: "r2", SourceFieldID: "q1", Operator: entity.OpIsNotEmpty, Action: entity.ActionEndForm, SortOrder: 2},
		{ID: "r1", SourceFieldID: "q1", Operator: entity.OpIsNotEmpty, Action: entity.ActionSkipTo, TargetFieldID: "q5", SortOrder: 1},
	}
	res := formlogic.Evaluate(buildForm(), rules, map[string]any{"q1": "a"})
	assert.False(t, res.Ended, "skip_to con menor sort_order gana sobre end_form")
	assert.Equal(t, []string{"q1", "q5"}, res.Path)
}

func TestEvaluate_MismoObjetivoSoloPrimeraRegla(t *testing.T) {
	rules := []entity.LogicRule{
		{SourceFieldID: "q1", Operator: entity.OpIsNotEmpty, Action: entity.ActionHideBlock, TargetFieldID: "q3", SortOrder: 1},
		{SourceFieldID: "q1", Operator: entity.OpIsNotEmpty, Action: entity.ActionSkipTo, TargetFieldID: "q3", SortOrder: 2},
	}
	res := formlogic.Evaluate(buildForm(), rules, map[string]any{"q1": "a"})
	assert.Equal(t, []string{"q1", "q2", "q4", "q5"}, res.Path)
	assert.Empty(t, res.Skipped)
}

func TestEvaluate_NoMutaReglas(t *testing.T) {
	rules := []entity.LogicRule{
		{ID: "b", SourceFieldID: "q1", SortOrder: 5, Operator: entity.OpIsEmpty, Action: entity.ActionHideBlock, TargetFieldID: "b2"},
		{ID: "a", SourceFieldID: "q1", SortOrder: 1, Operator: entity.OpIsEmpty, Action: entity.ActionSkipTo, TargetFieldID: "q5"},
	}
	before := append([]entity.LogicRule(nil), rules...)
	formlogic.Evaluate(buildForm(), rules, map[string]any{})
	assert.Equal(t, before, rules)
}

func TestEvaluate_Determinista(t *testing.T) {
	rules := []entity.LogicRule{
		{SourceFieldID: "q1", Operator: entity.OpContains, Value: "vip", Action: entity.ActionSkipTo, TargetFieldID: "q4", SortOrder: 1},
		{SourceFieldID: "q4", Operator: entity.OpGreaterThan, Value: 100, Action: entity.ActionEndForm, SortOrder: 2},
	}
	responses := map[string]any{"q1": "cliente vip", "q4": 250.0}

	first := formlogic.Evaluate(buildForm(), rules, responses)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, formlogic.Evaluate(buildForm(), rules, responses))
	}
	assert.Equal(t, "q4", first.EndedAt)
}

func TestEvaluate_EditarRespuestaAnteriorCambiaVisibilidad(t *testing.T) {
	rules := []entity.LogicRule{
		{SourceFieldID: "q1", Operator: entity.OpEquals, Value: true, Action: entity.ActionHideBlock, TargetFieldID: "b2", SortOrder: 1},
	}
	hiddenRes := formlogic.Evaluate(buildForm(), rules, map[string]any{"q1": true})
	assert.NotContains(t, hiddenRes.Path, "q3")

	shownRes := formlogic.Evaluate(buildForm(), rules, map[string]any{"q1": false})
	assert.Contains(t, shownRes.Path, "q3")
}

func TestNext_PrimerCampoYFinNatural(t *testing.T) {
	step, err := formlogic.Next(buildForm(), nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "q1", step.NextFieldID)
	assert.Equal(t, 5, step.Remaining)

	last, err := formlogic.Next(buildForm(), nil, nil, "q5")
	require.NoError(t, err)
	assert.True(t, last.Complete)
	assert.False(t, last.Ended)
}

func TestNext_CampoNoVisible(t *testing.T) {
	rules := []entity.LogicRule{
		{SourceFieldID: "q1", Operator: entity.OpEquals, Value: "no", Action: entity.ActionEndForm, SortOrder: 1},
	}
	_, err := formlogic.Next(buildForm(), rules, map[string]any{"q1": "no"}, "q3")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
