package functions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// FinanceMetricsFunction nombre de la función de agregación de métricas.
const FinanceMetricsFunction = "finance-metrics"

var _ ports.FinanceMetricsProvider = (*FinanceMetrics)(nil)

// FinanceMetrics adaptador de ports.FinanceMetricsProvider sobre la función finance-metrics.
type FinanceMetrics struct {
	client *Client
}

// NewFinanceMetrics construye el adaptador.
func NewFinanceMetrics(client *Client) *FinanceMetrics {
	return &FinanceMetrics{client: client}
}

type metricsRequest struct {
	CompanyID   string `json:"company_id"`
	FinanceMode string `json:"finance_mode"`
	Period      string `json:"period"`
}

type metricPayload struct {
	Value      *decimal.Decimal `json:"value"`
	Confidence string           `json:"confidence"`
	Source     string           `json:"source"`
}

type metricsPayload struct {
	Period  string                    `json:"period"`
	Metrics map[string]*metricPayload `json:"metrics"`
}

// Metrics invoca la función y traduce el payload. Claves ausentes o con value
// null quedan como métrica sin valor.
func (f *FinanceMetrics) Metrics(ctx context.Context, companyID, financeMode, period string) (*entity.FinanceMetrics, error) {
	var p metricsPayload
	err := f.client.Invoke(ctx, FinanceMetricsFunction, metricsRequest{
		CompanyID: companyID, FinanceMode: financeMode, Period: period,
	}, &p)
	if err != nil {
		return nil, err
	}
	if p.Period == "" {
		p.Period = period
	}
	get := func(key string) *entity.FinanceMetric {
		m, ok := p.Metrics[key]
		if !ok || m == nil {
			return nil
		}
		return &entity.FinanceMetric{Value: m.Value, Confidence: m.Confidence, Source: m.Source}
	}
	return &entity.FinanceMetrics{
		Period:             p.Period,
		Revenue:            get("revenue"),
		NetIncome:          get("net_income"),
		CashOnHand:         get("cash_on_hand"),
		AccountsReceivable: get("accounts_receivable"),
		AccountsPayable:    get("accounts_payable"),
		GrossMargin:        get("gross_margin"),
	}, nil
}
