package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Confianza de una métrica calculada por la función externa.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// Estados de un framework.
const (
	FrameworkDraft     = "draft"
	FrameworkPublished = "published"
)

// Framework agrupa objetivos y playbooks de una empresa.
type Framework struct {
	ID          string
	CompanyID   string
	Name        string
	Status      string
	PublishedAt *time.Time
	CreatedAt   time.Time
}

// FinanceTarget umbrales configurados por empresa + framework. nil = sin objetivo.
type FinanceTarget struct {
	CompanyID      string
	FrameworkID    string
	Revenue        *decimal.Decimal
	NetIncome      *decimal.Decimal
	CashMinimum    *decimal.Decimal
	ARMax          *decimal.Decimal
	APMax          *decimal.Decimal
	GrossMarginMin *decimal.Decimal
	UpdatedAt      time.Time
}

// FinanceMetric valor calculado por la función de métricas (solo lectura).
type FinanceMetric struct {
	Value      *decimal.Decimal
	Confidence string
	Source     string
}

// FinanceMetrics conjunto de métricas de un período.
type FinanceMetrics struct {
	Period             string // YYYY-MM
	Revenue            *FinanceMetric
	NetIncome          *FinanceMetric
	CashOnHand         *FinanceMetric
	AccountsReceivable *FinanceMetric
	AccountsPayable    *FinanceMetric
	GrossMargin        *FinanceMetric
}
