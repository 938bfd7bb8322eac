// Package pdf genera el recibo imprimible de una venta del punto de venta.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Tienda + GSTIN │ N° Recibo + Fecha   │
//	│  CONTACTO: Dirección / Tel / Email            │
//	│  CLIENTE: Nombre + método de pago             │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | HSN | P.Unit | Sub  │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: Subtotal / GST / TOTAL / Cambio     │
//	│  FOOTER: QR del recibo + leyenda              │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/fertipos-api/internal/application/sales"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/pkg/money"
)

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ sales.ReceiptRenderer = (*ReceiptRenderer)(nil)

// ReceiptRenderer implementa sales.ReceiptRenderer usando Maroto v2.
type ReceiptRenderer struct {
	money *money.Formatter
}

// NewReceiptRenderer construye el renderer con el formateador de moneda de la tienda.
func NewReceiptRenderer(f *money.Formatter) *ReceiptRenderer {
	return &ReceiptRenderer{money: f}
}

// RenderReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptRenderer) RenderReceipt(sale *entity.Sale, shop *entity.Tenant) ([]byte, error) {
	if sale == nil || shop == nil {
		return nil, fmt.Errorf("pdf: venta y tienda son obligatorias")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Recibo "+ReceiptNumber(sale), true).
		WithAuthor(shop.ShopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, shop))
	m.AddRows(contactRow(shop))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ReceiptNumber número visible del recibo: prefijo fijo + primeros 8 caracteres del ID.
func ReceiptNumber(sale *entity.Sale) string {
	id := strings.ReplaceAll(sale.ID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return "R-" + strings.ToUpper(id)
}

func headerRow(sale *entity.Sale, shop *entity.Tenant) core.Row {
	gst := "GSTIN: " + nonEmpty(shop.GSTNumber, "N/A")
	return row.New(16).Add(
		col.New(7).Add(
			text.New(shop.ShopName, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New(gst, props.Text{Size: 7, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("RECIBO DE VENTA", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(ReceiptNumber(sale), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 5}),
			text.New(sale.Date.Format("02/01/2006 15:04"), props.Text{Size: 7, Align: align.Right, Top: 11, Color: colorGray}),
		),
	)
}

func contactRow(shop *entity.Tenant) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s   |   Tel: %s   |   %s",
			nonEmpty(shop.Address, "-"),
			nonEmpty(shop.Phone, "-"),
			nonEmpty(shop.Email, "-"),
		), props.Text{Size: 7, Top: 1, Color: colorGray}),
	))
}

func customerRow(sale *entity.Sale) core.Row {
	return row.New(10).Add(
		col.New(8).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
			text.New(sale.CustomerName, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		),
		col.New(4).Add(
			text.New("PAGO", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(strings.ToUpper(sale.PaymentMethod), props.Text{Size: 9, Align: align.Right, Top: 5}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("HSN", 2, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func (g *ReceiptRenderer) itemRows(items []entity.SaleItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.ProductName
		if it.Unit != "" {
			name += " (" + it.Unit + ")"
		}
		out = append(out, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(name, props.Text{Size: 7, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(it.HSNCode, "-"), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.money.Format(it.UnitPrice), props.Text{Size: 7, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(g.money.Format(it.Subtotal), props.Text{Size: 7, Align: align.Right, Top: 1})),
		))
	}
	return out
}

func (g *ReceiptRenderer) totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Top: top})
	}
	gst := "GST " + sale.TaxRate.Shift(2).StringFixed(0) + "%:"

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:", 0),
			label(gst, 5),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 10, Color: colorPrimary}),
			label("Recibido:", 16),
			label("Cambio:", 21),
		),
		col.New(4).Add(
			value(g.money.Format(sale.Subtotal), 0),
			value(g.money.Format(sale.TaxTotal), 5),
			text.New(g.money.Format(sale.GrandTotal), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 10, Color: colorPrimary}),
			value(g.money.Format(sale.AmountTendered), 16),
			value(g.money.Format(sale.Change), 21),
		),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	return row.New(28).Add(
		col.New(4).Add(code.NewQr("fertipos:sale:"+sale.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Gracias por su compra.", props.Text{Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary}),
			text.New("Conserve este recibo para cambios y consultas.", props.Text{Size: 7, Top: 11, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
