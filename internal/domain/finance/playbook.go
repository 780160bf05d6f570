// Package finance compara métricas calculadas contra los objetivos de la empresa
// y produce las condiciones del playbook.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// Claves de condición, en el orden fijo de evaluación.
const (
	CondRevenueDown    = "revenue_down"
	CondARHigh         = "ar_high"
	CondAPHigh         = "ap_high"
	CondCashLow        = "cash_low"
	CondGrossMarginLow = "gross_margin_low"
	CondNetIncomeLow   = "net_income_low"
)

// Condition condición disparada con los operandos que la justifican.
type Condition struct {
	Key       string          `json:"key"`
	Actual    decimal.Decimal `json:"actual"`
	Threshold decimal.Decimal `json:"threshold"`
}

// Prompt texto del playbook asociado a una condición.
type Prompt struct {
	Title  string `json:"title"`
	Action string `json:"action"`
}

var prompts = map[string]Prompt{
	CondRevenueDown:    {Title: "Ingresos a la baja", Action: "Revisa el pipeline de ventas y las cuentas con menor actividad frente al período anterior."},
	CondARHigh:         {Title: "Cartera por encima del máximo", Action: "Prioriza el cobro de facturas vencidas y ajusta condiciones de crédito."},
	CondAPHigh:         {Title: "Cuentas por pagar altas", Action: "Negocia plazos con proveedores y programa pagos por prioridad."},
	CondCashLow:        {Title: "Caja por debajo del mínimo", Action: "Congela gastos no esenciales y acelera la cobranza."},
	CondGrossMarginLow: {Title: "Margen bruto bajo", Action: "Revisa precios y costo de ventas de los productos con menor margen."},
	CondNetIncomeLow:   {Title: "Utilidad neta bajo objetivo", Action: "Analiza gastos operativos frente al presupuesto del framework."},
}

// PromptFor devuelve el texto del playbook para key.
func PromptFor(key string) (Prompt, bool) {
	p, ok := prompts[key]
	return p, ok
}

// EvaluateConditions devuelve las condiciones disparadas en orden fijo.
// previous y targets pueden ser nil. Un operando ausente suprime la condición;
// nunca falla. Todas las comparaciones son desigualdades estrictas.
func EvaluateConditions(current, previous *entity.FinanceMetrics, targets *entity.FinanceTarget) []Condition {
	out := []Condition{}
	if current == nil {
		return out
	}
	var t entity.FinanceTarget
	if targets != nil {
		t = *targets
	}
	var prevRevenue *entity.FinanceMetric
	if previous != nil {
		prevRevenue = previous.Revenue
	}

	checks := []struct {
		key    string
		actual *decimal.Decimal
		bound  *decimal.Decimal
		// fires compara actual contra bound, ambos presentes.
		fires func(a, b decimal.Decimal) bool
	}{
		{CondRevenueDown, value(current.Revenue), value(prevRevenue), lessThan},
		{CondARHigh, value(current.AccountsReceivable), t.ARMax, greaterThan},
		{CondAPHigh, value(current.AccountsPayable), t.APMax, greaterThan},
		{CondCashLow, value(current.CashOnHand), t.CashMinimum, lessThan},
		{CondGrossMarginLow, value(current.GrossMargin), t.GrossMarginMin, lessThan},
		{CondNetIncomeLow, value(current.NetIncome), t.NetIncome, lessThan},
	}
	for _, c := range checks {
		if c.actual == nil || c.bound == nil {
			continue
		}
		if c.fires(*c.actual, *c.bound) {
			out = append(out, Condition{Key: c.key, Actual: *c.actual, Threshold: *c.bound})
		}
	}
	return out
}

// Keys extrae las claves de las condiciones.
func Keys(conds []Condition) []string {
	keys := make([]string, 0, len(conds))
	for _, c := range conds {
		keys = append(keys, c.Key)
	}
	return keys
}

func value(m *entity.FinanceMetric) *decimal.Decimal {
	if m == nil {
		return nil
	}
	return m.Value
}

func lessThan(a, b decimal.Decimal) bool    { return a.LessThan(b) }
func greaterThan(a, b decimal.Decimal) bool { return a.GreaterThan(b) }
