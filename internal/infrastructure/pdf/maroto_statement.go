// Package pdf implementa la generación del estado de cartera en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Estado de Cartera  │  Owner + Fecha de emisión     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cliente | Email | Vence | Días | Riesgo | Saldo      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: suma de saldos pendientes                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/domain/collections"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

var _ ports.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// amountPrinter formatea montos con separador de miles ($1,200.50).
var amountPrinter = message.NewPrinter(language.English)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatementPDF genera el PDF del estado de cartera y devuelve sus bytes.
// Los clientes llegan ya filtrados (solo saldo pendiente) y ordenados.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	_ context.Context,
	ownerName string,
	customers []*entity.Customer,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de Cartera", true).
		WithAuthor(ownerName, true).
		Build()

	m := maroto.New(cfg)
	now := time.Now()

	m.AddRows(headerRow(ownerName, now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())

	total := decimal.Zero
	for _, c := range customers {
		m.AddRows(customerRow(c, now))
		total = total.Add(c.AmountDue)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total, len(customers)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(ownerName string, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("ESTADO DE CARTERA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(ownerName, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha de emisión", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(now.Format("02/01/2006"), props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header("Cliente", 3, align.Left),
		header("Email", 3, align.Left),
		header("Vence", 2, align.Center),
		header("Días", 1, align.Center),
		header("Riesgo", 1, align.Center),
		header("Saldo", 2, align.Right),
	)
}

func customerRow(c *entity.Customer, now time.Time) core.Row {
	days := collections.DaysOverdue(c.DueDate, now)
	daysLabel := "—"
	riskColor := colorGray
	if days > 0 {
		daysLabel = fmt.Sprintf("%d", days)
	}
	if c.RiskLevel == collections.RiskHigh {
		riskColor = colorRed
	}

	cell := func(value string, size int, al align.Type, color *props.Color, style fontstyle.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 8, Align: al, Color: color, Style: style, Top: 1,
		}))
	}
	return row.New(6).Add(
		cell(c.Name, 3, align.Left, nil, fontstyle.Normal),
		cell(c.Email, 3, align.Left, colorGray, fontstyle.Normal),
		cell(c.DueDate.Format("02/01/2006"), 2, align.Center, nil, fontstyle.Normal),
		cell(daysLabel, 1, align.Center, nil, fontstyle.Normal),
		cell(c.RiskLevel, 1, align.Center, riskColor, fontstyle.Normal),
		cell(formatAmount(c.AmountDue), 2, align.Right, nil, fontstyle.Bold),
	)
}

func totalRow(total decimal.Decimal, count int) core.Row {
	return row.New(10).Add(
		col.New(7).Add(text.New(
			fmt.Sprintf("%d cliente(s) con saldo pendiente", count),
			props.Text{Size: 8, Color: colorGray, Top: 3},
		)),
		col.New(5).Add(text.New(
			"TOTAL  "+formatAmount(total),
			props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2},
		)),
	)
}

// formatAmount imprime el monto con separador de miles y dos decimales.
func formatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return amountPrinter.Sprintf("$%.2f", f)
}
