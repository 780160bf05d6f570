// Package pdf genera el reporte imprimible del playbook financiero.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa               │  Período + Framework       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Métrica | Actual | Anterior | Objetivo | Confianza   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PLAYBOOK: una fila por condición disparada                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de fuentes                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ ports.PlaybookPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.PlaybookPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador con formato numérico en español.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GeneratePlaybookPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePlaybookPDF(ctx context.Context, companyName string, report *dto.PlaybookResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Playbook financiero", true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("MÉTRICAS DEL PERÍODO"))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.metricRows(report)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("PLAYBOOK"))
	m.AddRows(g.playbookRows(report.Items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Métricas calculadas por la función de agregación financiera. "+
			"Los valores sin dato se muestran como \"-\".",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(companyName string, r *dto.PlaybookResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Empresa: "+r.CompanyID, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("PLAYBOOK FINANCIERO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(r.Period, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Framework: "+r.FrameworkID, props.Text{Size: 7, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Métrica", 4, align.Left),
		h("Actual", 2, align.Right),
		h("Anterior", 2, align.Right),
		h("Objetivo", 2, align.Right),
		h("Confianza", 2, align.Center),
	)
}

type metricLine struct {
	label    string
	current  *dto.MetricDTO
	previous *dto.MetricDTO
	target   *decimal.Decimal
}

func (g *MarotoPDFGenerator) metricRows(r *dto.PlaybookResponse) []core.Row {
	prev := func(pick func(*dto.MetricsDTO) *dto.MetricDTO) *dto.MetricDTO {
		if r.Previous == nil {
			return nil
		}
		return pick(r.Previous)
	}
	tgt := func(pick func(*dto.TargetsDTO) *decimal.Decimal) *decimal.Decimal {
		if r.Targets == nil {
			return nil
		}
		return pick(r.Targets)
	}
	lines := []metricLine{
		{"Ingresos", r.Current.Revenue, prev(func(m *dto.MetricsDTO) *dto.MetricDTO { return m.Revenue }), tgt(func(t *dto.TargetsDTO) *decimal.Decimal { return t.Revenue })},
		{"Utilidad neta", r.Current.NetIncome, prev(func(m *dto.MetricsDTO) *dto.MetricDTO { return m.NetIncome }), tgt(func(t *dto.TargetsDTO) *decimal.Decimal { return t.NetIncome })},
		{"Caja disponible", r.Current.CashOnHand, prev(func(m *dto.MetricsDTO) *dto.MetricDTO { return m.CashOnHand }), tgt(func(t *dto.TargetsDTO) *decimal.Decimal { return t.CashMinimum })},
		{"Cuentas por cobrar", r.Current.AccountsReceivable, prev(func(m *dto.MetricsDTO) *dto.MetricDTO { return m.AccountsReceivable }), tgt(func(t *dto.TargetsDTO) *decimal.Decimal { return t.ARMax })},
		{"Cuentas por pagar", r.Current.AccountsPayable, prev(func(m *dto.MetricsDTO) *dto.MetricDTO { return m.AccountsPayable }), tgt(func(t *dto.TargetsDTO) *decimal.Decimal { return t.APMax })},
		{"Margen bruto", r.Current.GrossMargin, prev(func(m *dto.MetricsDTO) *dto.MetricDTO { return m.GrossMargin }), tgt(func(t *dto.TargetsDTO) *decimal.Decimal { return t.GrossMarginMin })},
	}

	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		confidence := "-"
		if l.current != nil && l.current.Confidence != "" {
			confidence = l.current.Confidence
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(l.label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.metric(l.current), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.metric(l.previous), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray})),
			col.New(2).Add(text.New(g.amount(l.target), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(confidence, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) playbookRows(items []dto.PlaybookItem) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin condiciones disparadas en el período.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(16).Add(
			col.New(12).Add(
				text.New(it.Title, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1, Color: colorAlert}),
				text.New(fmt.Sprintf("Actual: %s   |   Umbral: %s", g.amount(&it.Actual), g.amount(&it.Threshold)),
					props.Text{Size: 7, Top: 6, Color: colorGray}),
				text.New(it.Action, props.Text{Size: 8, Top: 10}),
			),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) metric(m *dto.MetricDTO) string {
	if m == nil {
		return "-"
	}
	return g.amount(m.Value)
}

// amount formatea con separador de miles local y dos decimales.
func (g *MarotoPDFGenerator) amount(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
