// Package pdf implementa la representación gráfica del estimado de almacenaje
// de un artículo en bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Operador logístico  │  ESTIMADO + fecha de emisión │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre + NIT/CC + contacto                         │
//	│  ARTÍCULO: descripción + cantidad actual                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Llegada | Salida | Días | Tarifa diaria | Total      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL ESTIMADO                                              │
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

	"github.com/tu-usuario/logistica-api/internal/application/ledger"
	"github.com/tu-usuario/logistica-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoEstimateGenerator implementa ledger.EstimatePDFGenerator usando Maroto v2.
type MarotoEstimateGenerator struct {
	operatorName string
}

var _ ledger.EstimatePDFGenerator = (*MarotoEstimateGenerator)(nil)

// NewMarotoEstimateGenerator construye el generador con el nombre del
// operador logístico que encabeza el documento.
func NewMarotoEstimateGenerator(operatorName string) *MarotoEstimateGenerator {
	return &MarotoEstimateGenerator{operatorName: operatorName}
}

// GenerateEstimatePDF genera el PDF del estimado y devuelve sus bytes.
func (g *MarotoEstimateGenerator) GenerateEstimatePDF(
	_ context.Context,
	item *entity.WarehouseItem,
	customer *entity.Customer,
	est *ledger.Estimate,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estimado de Almacenaje", true).
		WithAuthor(g.operatorName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(item))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(itemRow(item))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(item, est))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(est))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar estimado: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: operador (izq) y título + referencia del artículo (der).
func (g *MarotoEstimateGenerator) headerRow(item *entity.WarehouseItem) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.operatorName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("ESTIMADO DE ALMACENAJE", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Ref: "+item.ID, props.Text{
				Size: 7, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente dueño de la mercancía.
func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT/CC: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(customer.TaxID, "—"),
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// itemRow: descripción y cantidad actual del artículo.
func itemRow(item *entity.WarehouseItem) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ARTÍCULO EN BODEGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Cantidad actual: %d",
				item.Description, item.Quantity,
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Llegada", 3, align.Left),
		h("Salida", 3, align.Left),
		h("Días", 1, align.Center),
		h("Tarifa diaria", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func tableDetailRow(item *entity.WarehouseItem, est *ledger.Estimate) core.Row {
	departed := "en bodega"
	if item.DepartedAt != nil {
		departed = *item.DepartedAt
	}
	arrived := "—"
	if item.ArrivedAt != nil {
		arrived = *item.ArrivedAt
	}
	cell := func(v string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(7).Add(
		cell(arrived, 3, align.Left),
		cell(departed, 3, align.Left),
		cell(fmt.Sprintf("%d", est.DurationDays), 1, align.Center),
		cell(item.DailyStoragePrice.StringFixed(2), 2, align.Right),
		cell(est.Cost.StringFixed(2), 3, align.Right),
	)
}

func totalRow(est *ledger.Estimate) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL ESTIMADO", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
		col.New(3).Add(text.New("$ "+est.Cost.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
		})),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
