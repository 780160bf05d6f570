package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricDTO valor calculado con su confianza y origen. Value nil = sin dato.
type MetricDTO struct {
	Value      *decimal.Decimal `json:"value"`
	Confidence string           `json:"confidence,omitempty"`
	Source     string           `json:"source,omitempty"`
}

// MetricsDTO métricas de un período.
type MetricsDTO struct {
	Period             string     `json:"period"`
	Revenue            *MetricDTO `json:"revenue"`
	NetIncome          *MetricDTO `json:"net_income"`
	CashOnHand         *MetricDTO `json:"cash_on_hand"`
	AccountsReceivable *MetricDTO `json:"accounts_receivable"`
	AccountsPayable    *MetricDTO `json:"accounts_payable"`
	GrossMargin        *MetricDTO `json:"gross_margin"`
}

// TargetsDTO umbrales configurables; null = sin objetivo.
type TargetsDTO struct {
	Revenue        *decimal.Decimal `json:"revenue"`
	NetIncome      *decimal.Decimal `json:"net_income"`
	CashMinimum    *decimal.Decimal `json:"cash_minimum"`
	ARMax          *decimal.Decimal `json:"ar_max"`
	APMax          *decimal.Decimal `json:"ap_max"`
	GrossMarginMin *decimal.Decimal `json:"gross_margin_min"`
}

// PlaybookItem condición disparada con su texto de playbook.
type PlaybookItem struct {
	Key       string          `json:"key"`
	Title     string          `json:"title"`
	Action    string          `json:"action"`
	Actual    decimal.Decimal `json:"actual"`
	Threshold decimal.Decimal `json:"threshold"`
}

// PlaybookResponse resultado del evaluador de condiciones.
type PlaybookResponse struct {
	CompanyID   string         `json:"company_id"`
	FrameworkID string         `json:"framework_id"`
	Period      string         `json:"period"`
	Current     MetricsDTO     `json:"current"`
	Previous    *MetricsDTO    `json:"previous"`
	Targets     *TargetsDTO    `json:"targets"`
	Conditions  []string       `json:"conditions"`
	Items       []PlaybookItem `json:"items"`
}

// TrendResponse métricas de N períodos ordenadas por período.
type TrendResponse struct {
	Periods []MetricsDTO `json:"periods"`
}

// CreateFrameworkRequest alta de framework en borrador.
type CreateFrameworkRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// FrameworkResponse framework de la empresa.
type FrameworkResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
