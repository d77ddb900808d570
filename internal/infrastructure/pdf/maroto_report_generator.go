// Package pdf implementa la generación del reporte de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE A                                                  │
//	│  TABLA: Factura | Fecha | Producto | Cant | [Precio|Total]  │
//	│  Subtotal cliente                                           │
//	│  CLIENTE B ...                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GENERAL                                              │
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

	"github.com/tu-usuario/pos-inventario/internal/application/reports"
	"github.com/tu-usuario/pos-inventario/internal/domain/entity"
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSalesReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReport(_ context.Context, report *reports.SalesReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, group := range report.Groups {
		m.AddRows(customerHeaderRow(group))
		m.AddRows(tableHeaderRow(report.ShowPrices))
		for _, sale := range group.Sales {
			for _, r := range saleRows(sale, report.ShowPrices) {
				m.AddRows(r)
			}
		}
		if report.ShowPrices {
			m.AddRows(subtotalRow(group))
		}
		m.AddRows(line.NewRow(2))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if report.ShowPrices {
		m.AddRows(grandTotalRow(report))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y rango de fechas (der).
func headerRow(report *reports.SalesReport) core.Row {
	rango := report.From.Format("02/01/2006") + " - " + report.To.Format("02/01/2006")
	return row.New(14).Add(
		col.New(7).Add(
			text.New("Reporte de ventas", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(rango, props.Text{
				Size: 10, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

// customerHeaderRow: nombre del cliente como encabezado de grupo.
func customerHeaderRow(group reports.CustomerGroup) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(group.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1,
			}),
		),
	)
}

func tableHeaderRow(showPrices bool) core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray}
	cols := []core.Col{
		col.New(3).Add(text.New("Factura", header)),
		col.New(2).Add(text.New("Fecha", header)),
	}
	if showPrices {
		cols = append(cols,
			col.New(3).Add(text.New("Producto", header)),
			col.New(1).Add(text.New("Cant", alignRight(header))),
			col.New(1).Add(text.New("Precio", alignRight(header))),
			col.New(2).Add(text.New("Total", alignRight(header))),
		)
	} else {
		cols = append(cols,
			col.New(5).Add(text.New("Producto", header)),
			col.New(2).Add(text.New("Cant", alignRight(header))),
		)
	}
	return row.New(6).Add(cols...)
}

// saleRows: una fila por línea de la venta; factura y fecha solo en la primera.
func saleRows(sale *entity.Sale, showPrices bool) []core.Row {
	cell := props.Text{Size: 8}
	rows := make([]core.Row, 0, len(sale.Items))
	for i, item := range sale.Items {
		invoiceNo, date := "", ""
		if i == 0 {
			invoiceNo = sale.InvoiceNo
			date = sale.Date.Format("02/01/2006")
		}
		cols := []core.Col{
			col.New(3).Add(text.New(invoiceNo, cell)),
			col.New(2).Add(text.New(date, cell)),
		}
		if showPrices {
			cols = append(cols,
				col.New(3).Add(text.New(item.ProductName, cell)),
				col.New(1).Add(text.New(fmt.Sprintf("%d", item.Quantity), alignRight(cell))),
				col.New(1).Add(text.New(item.Price.StringFixed(2), alignRight(cell))),
				col.New(2).Add(text.New(item.Total.StringFixed(2), alignRight(cell))),
			)
		} else {
			cols = append(cols,
				col.New(5).Add(text.New(item.ProductName, cell)),
				col.New(2).Add(text.New(fmt.Sprintf("%d", item.Quantity), alignRight(cell))),
			)
		}
		rows = append(rows, row.New(5).Add(cols...))
	}
	return rows
}

func subtotalRow(group reports.CustomerGroup) core.Row {
	return row.New(7).Add(
		col.New(10).Add(text.New("Subtotal "+group.CustomerName, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
		})),
		col.New(2).Add(text.New(group.Subtotal.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
		})),
	)
}

func grandTotalRow(report *reports.SalesReport) core.Row {
	return row.New(9).Add(
		col.New(10).Add(text.New("TOTAL GENERAL", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
		})),
		col.New(2).Add(text.New(report.GrandTotal.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
		})),
	)
}

func alignRight(t props.Text) props.Text {
	t.Align = align.Right
	return t
}
