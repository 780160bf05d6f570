// Package formlogic evalúa las logic rules de un formulario contra un mapa de
// respuestas parcial. La evaluación es pura y determinista: no muta reglas ni
// respuestas y no hay backtracking.
package formlogic

import (
	"fmt"
	"sort"

	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// Result recorrido del formulario con las respuestas actuales.
type Result struct {
	Path       []string `json:"path"`       // campos visibles en orden de navegación
	Hidden     []string `json:"hidden"`     // ocultados por hide_block
	Skipped    []string `json:"skipped"`    // saltados por skip_to
	Ended      bool     `json:"ended"`      // una regla end_form disparó
	EndedAt    string   `json:"ended_at"`   // campo cuya regla terminó el formulario
	Unanswered []string `json:"unanswered"` // campos posteriores a end_form
}

// Step decisión de transición desde un campo.
type Step struct {
	NextFieldID string `json:"next_field_id"`
	Complete    bool   `json:"complete"`
	Ended       bool   `json:"ended"` // completo por end_form, no por fin natural
	Remaining   int    `json:"remaining"`
}

// endTarget clave de "objetivo" de end_form para el desempate por objetivo.
const endTarget = "\x00form"

// SortRules devuelve una copia ordenada por SortOrder (estable ante empates).
func SortRules(rules []entity.LogicRule) []entity.LogicRule {
	sorted := make([]entity.LogicRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SortOrder < sorted[j].SortOrder })
	return sorted
}

// Evaluate recorre el formulario completo aplicando las reglas en orden ascendente.
func Evaluate(form *entity.Form, rules []entity.LogicRule, responses map[string]any) Result {
	res := Result{Path: []string{}, Hidden: []string{}, Skipped: []string{}, Unanswered: []string{}}
	if form == nil {
		return res
	}

	fields := form.Fields
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.ID] = i
	}
	bySource := make(map[string][]entity.LogicRule)
	for _, r := range SortRules(rules) {
		bySource[r.SourceFieldID] = append(bySource[r.SourceFieldID], r)
	}

	hidden := make(map[string]bool)
	hide := func(target string, from int) {
		for j := from + 1; j < len(fields); j++ {
			if fields[j].ID == target || (fields[j].BlockID != "" && fields[j].BlockID == target) {
				hidden[fields[j].ID] = true
			}
		}
	}

	for i := 0; i < len(fields); {
		f := fields[i]
		if hidden[f.ID] {
			res.Hidden = append(res.Hidden, f.ID)
			i++
			continue
		}
		res.Path = append(res.Path, f.ID)

		jump, ended := -1, false
		navigated := false
		decided := make(map[string]bool)
		for _, r := range bySource[f.ID] {
			target := r.TargetFieldID
			if r.Action == entity.ActionEndForm {
				target = endTarget
			}
			if decided[target] {
				continue
			}
			if !Matches(r.Operator, responses[r.SourceFieldID], r.Value) {
				continue
			}
			switch r.Action {
			case entity.ActionEndForm:
				if navigated {
					continue
				}
				ended, navigated = true, true
			case entity.ActionSkipTo:
				if navigated {
					continue
				}
				idx, ok := index[target]
				if !ok || idx <= i {
					continue
				}
				jump, navigated = idx, true
			case entity.ActionHideBlock:
				hide(target, i)
			default:
				continue
			}
			decided[target] = true
			if ended {
				break
			}
		}

		if ended {
			res.Ended = true
			res.EndedAt = f.ID
			for _, rest := range fields[i+1:] {
				res.Unanswered = append(res.Unanswered, rest.ID)
			}
			break
		}
		if jump >= 0 {
			for k := i + 1; k < jump; k++ {
				if !hidden[fields[k].ID] {
					res.Skipped = append(res.Skipped, fields[k].ID)
				}
			}
			i = jump
			continue
		}
		i++
	}
	return res
}

// Next decide el siguiente campo visible tras currentFieldID, o si el formulario
// termina. currentFieldID vacío pide el primer campo. Devuelve domain.ErrInvalidInput
// si el campo actual no es visible con las respuestas dadas.
func Next(form *entity.Form, rules []entity.LogicRule, responses map[string]any, currentFieldID string) (Step, error) {
	res := Evaluate(form, rules, responses)

	if currentFieldID == "" {
		if len(res.Path) == 0 {
			return Step{Complete: true}, nil
		}
		return Step{NextFieldID: res.Path[0], Remaining: len(res.Path)}, nil
	}

	pos := -1
	for i, id := range res.Path {
		if id == currentFieldID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return Step{}, fmt.Errorf("%w: el campo %q no es visible con las respuestas actuales", domain.ErrInvalidInput, currentFieldID)
	}
	if res.Ended && res.EndedAt == currentFieldID {
		return Step{Complete: true, Ended: true}, nil
	}
	if pos == len(res.Path)-1 {
		return Step{Complete: true}, nil
	}
	return Step{NextFieldID: res.Path[pos+1], Remaining: len(res.Path) - pos - 1}, nil
}
