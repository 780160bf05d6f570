package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/finance"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func metric(v int64) *entity.FinanceMetric {
	return &entity.FinanceMetric{Value: dec(v), Confidence: entity.ConfidenceHigh, Source: "ledger"}
}

func TestEvaluateConditions_CajaBajoMinimo(t *testing.T) {
	current := &entity.FinanceMetrics{Period: "2026-09", CashOnHand: metric(500)}
	targets := &entity.FinanceTarget{CashMinimum: dec(1000)}

	conds := finance.EvaluateConditions(current, nil, targets)
	require.Len(t, conds, 1)
	assert.Equal(t, finance.CondCashLow, conds[0].Key)
	assert.True(t, conds[0].Actual.Equal(decimal.NewFromInt(500)))
	assert.True(t, conds[0].Threshold.Equal(decimal.NewFromInt(1000)))
}

func TestEvaluateConditions_OrdenFijo(t *testing.T) {
	current := &entity.FinanceMetrics{
		Revenue:            metric(800),
		NetIncome:          metric(10),
		CashOnHand:         metric(100),
		AccountsReceivable: metric(5000),
		AccountsPayable:    metric(4000),
		GrossMargin:        metric(20),
	}
	previous := &entity.FinanceMetrics{Revenue: metric(1000)}
	targets := &entity.FinanceTarget{
		NetIncome:      dec(50),
		CashMinimum:    dec(200),
		ARMax:          dec(3000),
		APMax:          dec(3000),
		GrossMarginMin: dec(30),
	}

	keys := finance.Keys(finance.EvaluateConditions(current, previous, targets))
	assert.Equal(t, []string{
		finance.CondRevenueDown,
		finance.CondARHigh,
		finance.CondAPHigh,
		finance.CondCashLow,
		finance.CondGrossMarginLow,
		finance.CondNetIncomeLow,
	}, keys)
}

func TestEvaluateConditions_DesigualdadEstricta(t *testing.T) {
	current := &entity.FinanceMetrics{
		Revenue:            metric(1000),
		CashOnHand:         metric(1000),
		AccountsReceivable: metric(3000),
	}
	previous := &entity.FinanceMetrics{Revenue: metric(1000)}
	targets := &entity.FinanceTarget{CashMinimum: dec(1000), ARMax: dec(3000)}

	assert.Empty(t, finance.EvaluateConditions(current, previous, targets))
}

func TestEvaluateConditions_OperandoAusenteSuprime(t *testing.T) {
	// Métricas sin valor, objetivos nil, período anterior ausente.
	current := &entity.FinanceMetrics{
		Revenue:     metric(1),
		CashOnHand:  &entity.FinanceMetric{Confidence: entity.ConfidenceMedium},
		GrossMargin: nil,
	}
	targets := &entity.FinanceTarget{CashMinimum: dec(1000), GrossMarginMin: dec(40)}

	assert.Empty(t, finance.EvaluateConditions(current, nil, targets))
	assert.Empty(t, finance.EvaluateConditions(current, &entity.FinanceMetrics{}, nil))
	assert.NotPanics(t, func() {
		assert.Empty(t, finance.EvaluateConditions(nil, nil, nil))
	})
}

func TestPromptFor_TodasLasCondicionesTienenTexto(t *testing.T) {
	for _, key := range []string{
		finance.CondRevenueDown, finance.CondARHigh, finance.CondAPHigh,
		finance.CondCashLow, finance.CondGrossMarginLow, finance.CondNetIncomeLow,
	} {
		p, ok := finance.PromptFor(key)
		assert.True(t, ok, key)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Action)
	}
	_, ok := finance.PromptFor("desconocida")
	assert.False(t, ok)
}
