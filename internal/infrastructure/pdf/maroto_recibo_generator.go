// Package pdf implementa la generación del recibo de venta en PDF.
//
// Layout de la página A4:
//
//	┌──────────────────────────────────────────────────────┐
//	│  HEADER: Recibo + N° de venta + Fecha                │
//	│  CLIENTE: nombre (o "Cliente de mostrador")          │
//	│  ────────────────────────────────────────────────    │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal          │
//	│  ────────────────────────────────────────────────    │
//	│  TOTALES: Subtotal / Descuento / TOTAL               │
//	│  FOOTER: método de pago y estado                     │
//	└──────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/avendano/puntoventa-api/internal/application/sales"
	"github.com/avendano/puntoventa-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReciboGenerator implementa sales.ReciboPDFGenerator usando Maroto v2.
type MarotoReciboGenerator struct{}

// NewMarotoReciboGenerator construye el generador.
func NewMarotoReciboGenerator() *MarotoReciboGenerator { return &MarotoReciboGenerator{} }

// GenerarReciboPDF genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReciboGenerator) GenerarReciboPDF(
	_ context.Context,
	venta *entity.Venta,
	cliente *entity.Cliente,
	lineas []sales.LineaRecibo,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(venta))
	m.AddRows(clienteRow(cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range lineaRows(lineas) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalesRows(venta)...)
	m.AddRows(footerRow(venta))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título + número de venta (izq) y fecha (der).
func headerRow(venta *entity.Venta) core.Row {
	fecha := venta.FechaVenta.Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("RECIBO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+venta.ID, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// clienteRow: nombre del cliente o venta de mostrador.
func clienteRow(cliente *entity.Cliente) core.Row {
	nombre := "Cliente de mostrador"
	if cliente != nil {
		nombre = cliente.Nombre
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Cliente: "+nombre, props.Text{Size: 9, Top: 1}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// lineaRows: una fila por línea de la venta.
func lineaRows(lineas []sales.LineaRecibo) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, l := range lineas {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Item.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.NombreProducto,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.Item.PrecioUnitario.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+l.Item.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalesRows: subtotal, descuento y total a pagar.
func totalesRows(venta *entity.Venta) []core.Row {
	linea := func(label, valor string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 9.0
		if bold {
			style = fontstyle.Bold
			size = 11
		}
		return row.New(6).Add(
			col.New(9).Add(text.New(label, props.Text{
				Size: size, Align: align.Right, Style: style, Top: 1,
			})),
			col.New(3).Add(text.New(valor, props.Text{
				Size: size, Align: align.Right, Style: style, Top: 1, Right: 1,
			})),
		)
	}
	return []core.Row{
		linea("Subtotal:", "$"+venta.Subtotal.StringFixed(2), false),
		linea("Descuento:", "-$"+venta.Descuento.StringFixed(2), false),
		linea("TOTAL A PAGAR:", "$"+venta.Total.StringFixed(2), true),
	}
}

// footerRow: método de pago y estado de la venta.
func footerRow(venta *entity.Venta) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Método de pago: %s   |   Estado: %s",
				strings.ToUpper(venta.MetodoPago), venta.Estado,
			), props.Text{Size: 8, Top: 4, Color: colorGray}),
		),
	)
}
